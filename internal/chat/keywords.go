package chat

// symptomMapping ties an everyday symptom or condition keyword to an ordered
// list of representative product names. A slice (not a map) keeps extraction
// output deterministic across runs.
type symptomMapping struct {
	Keyword  string
	Products []string
}

var symptomMappings = []symptomMapping{
	{"diabetes", []string{"Metformin", "Glimepiride", "Insulin Glargine"}},
	{"blood pressure", []string{"Amlodipine", "Losartan", "Telmisartan"}},
	{"bp", []string{"Amlodipine", "Losartan", "Telmisartan"}},
	{"hypertension", []string{"Amlodipine", "Losartan", "Telmisartan"}},
	{"cholesterol", []string{"Atorvastatin"}},
	{"fever", []string{"Dolo 650", "Crocin Advance"}},
	{"pain", []string{"Dolo 650", "Ibuprofen 400mg", "Diclofenac Gel"}},
	{"headache", []string{"Dolo 650", "Crocin Advance"}},
	{"cold", []string{"Cetirizine 10mg", "Crocin Advance"}},
	{"allergy", []string{"Cetirizine 10mg", "Montelukast 10mg"}},
	{"acidity", []string{"Omeprazole 20mg", "Pan-D", "Ranitidine 150mg"}},
	{"gastric", []string{"Omeprazole 20mg", "Pan-D"}},
	{"infection", []string{"Azithromycin 500mg", "Amoxicillin 500mg", "Augmentin 625"}},
	{"antibiotic", []string{"Azithromycin 500mg", "Amoxicillin 500mg"}},
	{"thyroid", []string{"Levothyroxine 50mcg"}},
	{"asthma", []string{"Montelukast 10mg", "Salbutamol Inhaler"}},
	{"vitamin", []string{"Vitamin D3 60K", "Vitamin B Complex", "Multivitamin Tablets"}},
	{"diarrhea", []string{"ORS Sachets", "Loperamide 2mg"}},
	{"wound", []string{"Betadine Solution", "Bandage Roll"}},
}
