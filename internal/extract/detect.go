package extract

import (
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
)

var (
	salarySlipKeywords = []string{"salary", "pay slip", "payslip", "monthly", "basic salary", "gross salary"}
	form16Keywords     = []string{"form 16", "form16", "annual", "tax deduction", "tds", "income tax"}
)

// DetectDocumentType classifies text by counting which keywords of each
// document type it contains. Ties, including text with no keywords at all,
// are classified as salary slips.
func DetectDocumentType(text string) domain.DocumentType {
	lower := strings.ToLower(text)
	if keywordScore(lower, form16Keywords) > keywordScore(lower, salarySlipKeywords) {
		return domain.DocumentForm16
	}
	return domain.DocumentSalarySlip
}

func keywordScore(text string, keywords []string) int {
	score := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			score++
		}
	}
	return score
}
