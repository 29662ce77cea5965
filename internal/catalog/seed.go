package catalog

import (
	"github.com/google/uuid"
)

// Seeded returns the demo catalog used by the demo binary and examples.
// Product ids are generated per call, so sessions against different state
// directories never collide.
func Seeded() *StaticSource {
	colorGroup := VariantGroup{
		Type:     "color",
		Name:     "Warna",
		Required: true,
		Options: []VariantOption{
			{ID: "red", Value: "Merah", Images: []string{"/img/ponsel-merah-1.jpg", "/img/ponsel-merah-2.jpg"}},
			{ID: "blue", Value: "Biru", Images: []string{"/img/ponsel-biru-1.jpg"}},
			{ID: "black", Value: "Hitam"},
		},
	}
	storageGroup := VariantGroup{
		Type:     "storage",
		Name:     "Penyimpanan",
		Required: true,
		Options: []VariantOption{
			{ID: "128gb", Value: "128GB"},
			{ID: "256gb", Value: "256GB", PriceDelta: 50_00},
			{ID: "512gb", Value: "512GB", PriceDelta: 120_00},
		},
	}

	src, err := NewStaticSource(
		Product{
			ID:            uuid.NewString(),
			Name:          "Ponsel Nusantara X",
			Slug:          "ponsel-nusantara-x",
			Price:         299_00,
			OriginalPrice: 349_00,
			Images:        []string{"/img/ponsel-1.jpg", "/img/ponsel-2.jpg"},
			VariantGroups: []VariantGroup{colorGroup, storageGroup},
		},
		Product{
			ID:     uuid.NewString(),
			Name:   "Headset Gaming Garuda",
			Slug:   "headset-gaming-garuda",
			Price:  79_00,
			Images: []string{"/img/headset-1.jpg"},
			VariantGroups: []VariantGroup{
				{
					Type: "color",
					Name: "Warna",
					Options: []VariantOption{
						{ID: "black", Value: "Hitam"},
						{ID: "white", Value: "Putih", PriceDelta: 5_00},
					},
				},
			},
		},
		Product{
			ID:            uuid.NewString(),
			Name:          "Tumbler Stainless 1L",
			Slug:          "tumbler-stainless-1l",
			Price:         15_00,
			OriginalPrice: 20_00,
			Images:        []string{"/img/tumbler-1.jpg"},
		},
		Product{
			ID:    uuid.NewString(),
			Name:  "Tas Ransel Komodo",
			Slug:  "tas-ransel-komodo",
			Price: 45_00,
		},
	)
	if err != nil {
		// Seed data is compile-time constant shaped; a validation failure
		// here is a programming error.
		panic(err)
	}
	return src
}
