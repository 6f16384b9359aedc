package storefront

// DefaultProducts is the catalog seeded into an empty database.
func DefaultProducts() []Product {
	p := func(slug, name, category string, price int64, image, desc string) Product {
		return Product{
			Slug:        slug,
			Name:        name,
			Category:    category,
			Price:       price,
			Image:       "/public/" + image,
			Description: desc,
			Published:   true,
		}
	}
	return []Product{
		p("set-meja-4-kursi", "Set Meja 4 Kursi", "meja", 3500000, "assets2/meja/4 meja 1 kursi.jpeg",
			"Meja cafe minimalis dengan 4 kursi, cocok untuk cafe kecil bernuansa cozy."),
		p("sofa-esty", "Sofa Esty", "sofa", 2500000, "assets2/sofa/Sofa Esty.jpeg",
			"Sofa lounge dengan material premium dan desain elegan."),
		p("coffee-table-set", "Coffee Table Set", "set", 1800000, "assets2/set/Coffe table set.jpeg",
			"Set coffee table industrial untuk indoor maupun outdoor."),
		p("meja-komputer-gaming", "Meja Komputer Gaming", "meja", 1200000, "assets2/meja/Meja komputer gaming.jpeg",
			"Meja multifungsi dengan storage dan cable management."),
		p("sofa-gucci-2-seater", "Sofa Gucci 2 Seater", "sofa", 4200000, "assets2/sofa/Sofa gucchi 2 seater.jpeg",
			"Sofa dua dudukan untuk area VIP."),
		p("set-couple-rotan-busa", "Set Couple Rotan Busa", "set", 2100000, "assets2/set/Set couple ropan busa.jpeg",
			"Set couple rotan dengan busa empuk untuk sudut santai."),
		p("meja-taman", "Meja Taman", "meja", 950000, "assets2/meja/Meja taman.jpeg",
			"Meja outdoor tahan cuaca."),
		p("set-elinda", "Set Elinda", "set", 5600000, "assets2/set/set elinda.jpeg",
			"Kombinasi sofa dan meja kontemporer."),
		p("meja-konsol", "Meja Konsol", "meja", 0, "assets2/meja/Meja konsol.jpeg",
			"Meja konsol dengan storage maksimal. Harga sesuai ukuran, hubungi kami."),
	}
}
