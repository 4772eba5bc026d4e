package catalog

type Catalog struct {
	ContentTypes    []string   `yaml:"content_types" json:"content_types"`
	Tones           []string   `yaml:"tones" json:"tones"`
	DefaultIndustry string     `yaml:"default_industry" json:"default_industry"`
	Templates       []Template `yaml:"templates" json:"templates"`
	Trends          []Trend    `yaml:"trends" json:"trends"`
	Tools           []Tool     `yaml:"tools" json:"tools"`
	Plans           []Plan     `yaml:"plans" json:"plans"`
	FAQ             []FAQItem  `yaml:"faq" json:"faq"`
	Pages           []Page     `yaml:"pages" json:"pages"`
}

// Template is a post framework offered on the generate page. Topic is the
// prefilled generation topic.
type Template struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Topic       string `yaml:"-" json:"topic"`
}

type Trend struct {
	Category string `yaml:"category" json:"category"`
	Headline string `yaml:"headline" json:"headline"`
	Topic    string `yaml:"-" json:"topic"`
}

type Tool struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Status      string   `yaml:"status" json:"status"`
	Features    []string `yaml:"features" json:"features"`
}

type Plan struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Badge        string   `yaml:"badge,omitempty" json:"badge,omitempty"`
	PriceUSD     int      `yaml:"price_usd" json:"price_usd"`
	Period       string   `yaml:"period" json:"period"`
	CallToAction string   `yaml:"cta" json:"cta"`
	Features     []string `yaml:"features" json:"features"`
}

type FAQItem struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

type Page struct {
	Path       string `yaml:"path" json:"path"`
	Title      string `yaml:"title" json:"title"`
	Public     bool   `yaml:"public" json:"public"`
	Sidebar    bool   `yaml:"sidebar" json:"sidebar"`
	ComingSoon bool   `yaml:"coming_soon,omitempty" json:"coming_soon,omitempty"`
}

type PricingResponse struct {
	TrialDays int       `json:"trial_days"`
	Plans     []Plan    `json:"plans"`
	FAQ       []FAQItem `json:"faq"`
}
