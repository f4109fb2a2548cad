// Package fund holds the catalog's fund record as seen by the search engine.
package fund

// Fund is a read-only, point-in-time snapshot of a catalog record.
// The search engine never mutates funds; enrichment pipelines own them.
type Fund struct {
	schemeCode  string
	name        string
	fundHouse   string
	category    string
	subCategory string
	fundType    string
	nav         float64
	aum         float64
	popularity  float64
	tags        []string
	searchTerms []string
}

// New creates a fund snapshot.
func New(
	schemeCode, name, fundHouse, category, subCategory, fundType string,
	nav, aum, popularity float64,
	tags, searchTerms []string,
) Fund {
	return Fund{
		schemeCode:  schemeCode,
		name:        name,
		fundHouse:   fundHouse,
		category:    category,
		subCategory: subCategory,
		fundType:    fundType,
		nav:         nav,
		aum:         aum,
		popularity:  popularity,
		tags:        tags,
		searchTerms: searchTerms,
	}
}

// SchemeCode returns the fund identifier.
func (f *Fund) SchemeCode() string { return f.schemeCode }

// Name returns the display name.
func (f *Fund) Name() string { return f.name }

// FundHouse returns the issuing house.
func (f *Fund) FundHouse() string { return f.fundHouse }

// Category returns the top-level category.
func (f *Fund) Category() string { return f.category }

// SubCategory returns the sub-category.
func (f *Fund) SubCategory() string { return f.subCategory }

// FundType returns the instrument type (mutual fund, ETF, ...).
func (f *Fund) FundType() string { return f.fundType }

// NAV returns the current unit value.
func (f *Fund) NAV() float64 { return f.nav }

// AUM returns assets under management.
func (f *Fund) AUM() float64 { return f.aum }

// Popularity returns the popularity score.
func (f *Fund) Popularity() float64 { return f.popularity }

// Tags returns the free-form tag set.
func (f *Fund) Tags() []string { return f.tags }

// SearchTerms returns the precomputed name words and word-bigrams.
func (f *Fund) SearchTerms() []string { return f.searchTerms }
