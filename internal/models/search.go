package models

// SearchResults — объединённая выдача поиска по всем видам контента.
//
// Особенности:
//   - порядок внутри вида — порядок хранилища (повторного ранжирования нет);
//   - у вида, запрос которого упал, пустой список и запись в Errors/Failed;
//   - HasResults == true, если хотя бы один список непуст.
type SearchResults struct {
	Term       string              `json:"term"`
	Region     string              `json:"region"`
	News       []NewsItem          `json:"news"`
	Suppliers  []Supplier          `json:"suppliers"`
	Foundries  []Foundry           `json:"foundries"`
	Materials  []TechnicalMaterial `json:"materials"`
	Ebooks     []Ebook             `json:"ebooks"`
	Events     []Event             `json:"events"`
	HasResults bool                `json:"has_results"`
	Failed     []Kind              `json:"failed,omitempty"`
	Errors     map[Kind]error      `json:"-"`
}

// NewSearchResults возвращает пустую выдачу: все списки непустые-nil (JSON "[]").
func NewSearchResults(term, region string) *SearchResults {
	return &SearchResults{
		Term:      term,
		Region:    region,
		News:      []NewsItem{},
		Suppliers: []Supplier{},
		Foundries: []Foundry{},
		Materials: []TechnicalMaterial{},
		Ebooks:    []Ebook{},
		Events:    []Event{},
		Errors:    map[Kind]error{},
	}
}

// Count возвращает число элементов вида k.
func (r *SearchResults) Count(k Kind) int {
	switch k {
	case KindNews:
		return len(r.News)
	case KindSupplier:
		return len(r.Suppliers)
	case KindFoundry:
		return len(r.Foundries)
	case KindMaterial:
		return len(r.Materials)
	case KindEbook:
		return len(r.Ebooks)
	case KindEvent:
		return len(r.Events)
	default:
		return 0
	}
}

// Total возвращает суммарное число элементов.
func (r *SearchResults) Total() int {
	var n int
	for _, k := range Kinds() {
		n += r.Count(k)
	}

	return n
}

// Finalize доводит выдачу до инвариантов после сбора всех видов:
// nil-списки заменяются пустыми, Failed упорядочивается по Kinds(),
// HasResults пересчитывается.
func (r *SearchResults) Finalize() {
	if r.News == nil {
		r.News = []NewsItem{}
	}
	if r.Suppliers == nil {
		r.Suppliers = []Supplier{}
	}
	if r.Foundries == nil {
		r.Foundries = []Foundry{}
	}
	if r.Materials == nil {
		r.Materials = []TechnicalMaterial{}
	}
	if r.Ebooks == nil {
		r.Ebooks = []Ebook{}
	}
	if r.Events == nil {
		r.Events = []Event{}
	}
	if r.Errors == nil {
		r.Errors = map[Kind]error{}
	}

	r.Failed = r.Failed[:0]
	for _, k := range Kinds() {
		if _, failed := r.Errors[k]; failed {
			r.Failed = append(r.Failed, k)
		}
	}

	r.HasResults = r.Total() > 0
}
