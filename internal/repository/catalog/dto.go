package catalog

import (
	"strconv"
	"strings"

	"github.com/arthaset/fundex/internal/domain/fund"
)

// Hash field names of a catalog record. tags is a comma-separated TAG field,
// search_terms a space-joined TEXT field.
const (
	fieldSchemeCode  = "scheme_code"
	fieldName        = "name"
	fieldFundHouse   = "fund_house"
	fieldCategory    = "category"
	fieldSubCategory = "sub_category"
	fieldFundType    = "fund_type"
	fieldNAV         = "nav"
	fieldAUM         = "aum"
	fieldPopularity  = "popularity"
	fieldTags        = "tags"
	fieldSearchTerms = "search_terms"
)

const tagSeparator = ","

// fundFromFields rebuilds a fund snapshot from catalog hash fields.
func fundFromFields(schemeCode string, fields map[string]string) fund.Fund {
	return fund.New(
		schemeCode,
		fields[fieldName],
		fields[fieldFundHouse],
		fields[fieldCategory],
		fields[fieldSubCategory],
		fields[fieldFundType],
		parseFloat(fields[fieldNAV]),
		parseFloat(fields[fieldAUM]),
		parseFloat(fields[fieldPopularity]),
		splitList(fields[fieldTags], tagSeparator),
		strings.Fields(fields[fieldSearchTerms]),
	)
}

// fundToFields flattens a fund snapshot into catalog hash fields.
func fundToFields(f fund.Fund) map[string]string {
	return map[string]string{
		fieldSchemeCode:  f.SchemeCode(),
		fieldName:        f.Name(),
		fieldFundHouse:   f.FundHouse(),
		fieldCategory:    f.Category(),
		fieldSubCategory: f.SubCategory(),
		fieldFundType:    f.FundType(),
		fieldNAV:         formatFloat(f.NAV()),
		fieldAUM:         formatFloat(f.AUM()),
		fieldPopularity:  formatFloat(f.Popularity()),
		fieldTags:        strings.Join(f.Tags(), tagSeparator),
		fieldSearchTerms: strings.Join(f.SearchTerms(), " "),
	}
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func splitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
