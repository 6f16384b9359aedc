// Package feed selects and paginates the promotional posts shown in the
// home page carousel.
package feed

import "time"

// Post categories used by the reference pool.
const (
	CategoryMeja = "meja"
	CategorySofa = "sofa"
	CategorySet  = "set"
)

// Display holds the presentational fields of a post.
type Display struct {
	Author       string `json:"author"`
	Location     string `json:"location"`
	Avatar       string `json:"avatar"`
	Image        string `json:"image"`
	Caption      string `json:"caption"`
	Tags         string `json:"tags"`
	LikeBaseline int    `json:"-"`
}

// Post is an immutable entry of the content pool. Priority 1 is the best.
type Post struct {
	ID            string    `json:"id"`
	Category      string    `json:"category"`
	Priority      int       `json:"priority"`
	BasePublished time.Time `json:"-"`
	Display       Display   `json:"display"`
}

const (
	shopAccount  = "meja_cafe.plw"
	shopLocation = "Palu, Sulawesi Tengah"
	shopAvatar   = "assets2/logo/logo.jpg"
	day          = 24 * time.Hour
)

// DefaultPool returns the hand-curated posts, published relative to now.
func DefaultPool(now time.Time) []Post {
	post := func(id, category string, priority int, age time.Duration, image, caption, tags string, likes int) Post {
		return Post{
			ID:            id,
			Category:      category,
			Priority:      priority,
			BasePublished: now.Add(-age),
			Display: Display{
				Author:       shopAccount,
				Location:     shopLocation,
				Avatar:       shopAvatar,
				Image:        image,
				Caption:      caption,
				Tags:         tags,
				LikeBaseline: likes,
			},
		}
	}
	return []Post{
		post("1", CategoryMeja, 1, 2*day, "assets2/meja/4 meja 1 kursi.jpeg",
			"Set meja cafe minimalis dengan 4 kursi yang nyaman! Perfect untuk cafe kecil dengan nuansa cozy dan modern.",
			"#mejacafe #furnituredesign #coffeeshop #minimalist #interior", 143),
		post("2", CategorySofa, 2, 4*day, "assets2/sofa/Sofa Esty.jpeg",
			"Sofa Esty series - kenyamanan premium untuk area lounge cafe Anda! Design elegant dengan material berkualitas.",
			"#sofacafe #premium #comfort #lounge #furniture", 89),
		post("3", CategorySet, 1, 7*day, "assets2/set/Coffe table set.jpeg",
			"Coffee table set dengan design industrial modern! Cocok untuk outdoor maupun indoor dengan style yang timeless.",
			"#coffeetable #industrial #outdoor #stylish #modern", 156),
		post("4", CategoryMeja, 3, 8*day, "assets2/meja/Meja komputer gaming.jpeg",
			"Meja gaming yang multifunctional! Bisa untuk workspace cafe dengan storage yang praktis dan cable management rapi.",
			"#mejagaming #workspace #multifunctional #modern #storage", 201),
		post("5", CategorySofa, 1, 6*day, "assets2/sofa/Sofa gucchi 2 seater.jpeg",
			"Sofa Gucci 2 seater - luxury meets comfort! Design eksklusif untuk area VIP cafe dengan material premium.",
			"#sofagucci #luxury #vip #exclusive #premium #comfort", 342),
		post("6", CategorySet, 2, 15*day, "assets2/set/Set couple ropan busa.jpeg",
			"Set couple dengan ropan busa super empuk! Perfect untuk date corner di cafe dengan nuansa romantic.",
			"#setcouple #romantic #datespot #comfort #soft #cafe", 97),
		post("7", CategoryMeja, 2, 10*day, "assets2/meja/Meja taman.jpeg",
			"Meja taman outdoor dengan design weather-resistant! Perfect untuk area outdoor cafe dengan nuansa natural.",
			"#mejataman #outdoor #weatherproof #natural #garden", 178),
		post("8", CategorySet, 1, 5*day, "assets2/set/set elinda.jpeg",
			"Set Elinda dengan design contemporary elegant! Kombinasi sofa dan meja yang sempurna untuk area VIP.",
			"#setelinda #contemporary #elegant #vip #exclusive", 234),
		post("9", CategoryMeja, 3, 12*day, "assets2/meja/Meja konsol.jpeg",
			"Meja konsol multifungsi dengan storage yang maksimal! Cocok untuk display produk atau area kasir cafe.",
			"#mejakonsol #storage #display #kasir #multifungsi", 126),
	}
}
