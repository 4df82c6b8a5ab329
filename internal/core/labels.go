package core

// Transaction categories. Free-form tags are tolerated at export time,
// but the UI and validation work against this fixed set.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHousing       Category = "housing"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryShopping      Category = "shopping"
	CategoryDebtPayment   Category = "debt_payment"
	CategorySavings       Category = "savings"
	CategorySalary        Category = "salary"
	CategoryFreelance     Category = "freelance"
	CategoryOther         Category = "other"
)

// categoryLabels maps categories to their Thai display labels.
var categoryLabels = map[Category]string{
	CategoryFood:          "อาหาร",
	CategoryTransport:     "การเดินทาง",
	CategoryHousing:       "ที่อยู่อาศัย",
	CategoryUtilities:     "สาธารณูปโภค",
	CategoryEntertainment: "บันเทิง",
	CategoryHealth:        "สุขภาพ",
	CategoryEducation:     "การศึกษา",
	CategoryShopping:      "ชอปปิ้ง",
	CategoryDebtPayment:   "ชำระหนี้",
	CategorySavings:       "ออมเงิน",
	CategorySalary:        "เงินเดือน",
	CategoryFreelance:     "ฟรีแลนซ์",
	CategoryOther:         "อื่นๆ",
}

// typeLabels maps transaction types to their Thai display labels.
var typeLabels = map[TransactionType]string{
	Income:  "รายรับ",
	Expense: "รายจ่าย",
}

// Label returns the Thai label for the category. Unknown categories fall
// back to the raw tag so an export never fails on stale data.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Label returns the Thai label for the transaction type.
func (t TransactionType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Known reports whether the category belongs to the fixed set.
func (c Category) Known() bool {
	_, ok := categoryLabels[c]
	return ok
}
