package models

type SocialMedia struct {
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
}

type RestaurantInfo struct {
	Name          string      `json:"name"`
	EnglishName   string      `json:"englishName"`
	Tagline       string      `json:"tagline"`
	Rating        float64     `json:"rating"`
	TotalReviews  int         `json:"totalReviews"`
	PriceRange    string      `json:"priceRange"`
	Phone         string      `json:"phone"`
	BusinessPhone string      `json:"businessPhone"`
	Address       string      `json:"address"`
	Location      string      `json:"location"`
	PlusCode      string      `json:"plusCode"`
	Timings       string      `json:"timings"`
	Services      []string    `json:"services"`
	SocialMedia   SocialMedia `json:"socialMedia"`
	MapEmbedURL   string      `json:"mapEmbedUrl"`
}
