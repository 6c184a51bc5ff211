package catalog

// DemoProducts is the seed catalog used by the in-memory store. Prices are in
// paise (integer cents of a rupee).
func DemoProducts() []Product {
	return []Product{
		{ID: "MED001", Name: "Dolo 650", ActiveIngredient: "Paracetamol", Category: "Analgesic", PriceCents: 3200, Stock: 180, PrescriptionRequired: false},
		{ID: "MED002", Name: "Crocin Advance", ActiveIngredient: "Paracetamol", Category: "Analgesic", PriceCents: 2850, Stock: 140, PrescriptionRequired: false},
		{ID: "MED003", Name: "Ibuprofen 400mg", ActiveIngredient: "Ibuprofen", Category: "Analgesic", PriceCents: 4100, Stock: 90, PrescriptionRequired: false},
		{ID: "MED004", Name: "Diclofenac Gel", ActiveIngredient: "Diclofenac", Category: "Analgesic", PriceCents: 11500, Stock: 45, PrescriptionRequired: false},
		{ID: "MED005", Name: "Metformin", ActiveIngredient: "Metformin", Category: "Antidiabetic", PriceCents: 4500, Stock: 120, PrescriptionRequired: true},
		{ID: "MED006", Name: "Glimepiride", ActiveIngredient: "Glimepiride", Category: "Antidiabetic", PriceCents: 6800, Stock: 70, PrescriptionRequired: true},
		{ID: "MED007", Name: "Insulin Glargine", ActiveIngredient: "Insulin Glargine", Category: "Antidiabetic", PriceCents: 64900, Stock: 25, PrescriptionRequired: true},
		{ID: "MED008", Name: "Amlodipine", ActiveIngredient: "Amlodipine", Category: "Antihypertensive", PriceCents: 3900, Stock: 110, PrescriptionRequired: true},
		{ID: "MED009", Name: "Losartan", ActiveIngredient: "Losartan", Category: "Antihypertensive", PriceCents: 5200, Stock: 95, PrescriptionRequired: true},
		{ID: "MED010", Name: "Telmisartan", ActiveIngredient: "Telmisartan", Category: "Antihypertensive", PriceCents: 7400, Stock: 80, PrescriptionRequired: true},
		{ID: "MED011", Name: "Atorvastatin", ActiveIngredient: "Atorvastatin", Category: "Statin", PriceCents: 8900, Stock: 85, PrescriptionRequired: true},
		{ID: "MED012", Name: "Cetirizine 10mg", ActiveIngredient: "Cetirizine", Category: "Antihistamine", PriceCents: 2400, Stock: 200, PrescriptionRequired: false},
		{ID: "MED013", Name: "Montelukast 10mg", ActiveIngredient: "Montelukast", Category: "Antihistamine", PriceCents: 14500, Stock: 60, PrescriptionRequired: true},
		{ID: "MED014", Name: "Omeprazole 20mg", ActiveIngredient: "Omeprazole", Category: "Antacid", PriceCents: 5600, Stock: 130, PrescriptionRequired: false},
		{ID: "MED015", Name: "Pan-D", ActiveIngredient: "Pantoprazole", Category: "Antacid", PriceCents: 12300, Stock: 75, PrescriptionRequired: false},
		{ID: "MED016", Name: "Ranitidine 150mg", ActiveIngredient: "Ranitidine", Category: "Antacid", PriceCents: 3100, Stock: 0, PrescriptionRequired: false},
		{ID: "MED017", Name: "Azithromycin 500mg", ActiveIngredient: "Azithromycin", Category: "Antibiotic", PriceCents: 9800, Stock: 55, PrescriptionRequired: true},
		{ID: "MED018", Name: "Amoxicillin 500mg", ActiveIngredient: "Amoxicillin", Category: "Antibiotic", PriceCents: 7200, Stock: 65, PrescriptionRequired: true},
		{ID: "MED019", Name: "Augmentin 625", ActiveIngredient: "Amoxicillin", Category: "Antibiotic", PriceCents: 18900, Stock: 40, PrescriptionRequired: true},
		{ID: "MED020", Name: "Levothyroxine 50mcg", ActiveIngredient: "Levothyroxine", Category: "Thyroid", PriceCents: 11800, Stock: 50, PrescriptionRequired: true},
		{ID: "MED021", Name: "Salbutamol Inhaler", ActiveIngredient: "Salbutamol", Category: "Respiratory", PriceCents: 22500, Stock: 35, PrescriptionRequired: true},
		{ID: "MED022", Name: "Vitamin D3 60K", ActiveIngredient: "Cholecalciferol", Category: "Supplement", PriceCents: 4800, Stock: 150, PrescriptionRequired: false},
		{ID: "MED023", Name: "Vitamin B Complex", ActiveIngredient: "B Vitamins", Category: "Supplement", PriceCents: 3600, Stock: 170, PrescriptionRequired: false},
		{ID: "MED024", Name: "Multivitamin Tablets", ActiveIngredient: "Multivitamin", Category: "Supplement", PriceCents: 5500, Stock: 160, PrescriptionRequired: false},
		{ID: "MED025", Name: "ORS Sachets", ActiveIngredient: "Oral Rehydration Salts", Category: "Gastro", PriceCents: 1800, Stock: 220, PrescriptionRequired: false},
		{ID: "MED026", Name: "Loperamide 2mg", ActiveIngredient: "Loperamide", Category: "Gastro", PriceCents: 2900, Stock: 100, PrescriptionRequired: false},
		{ID: "MED027", Name: "Betadine Solution", ActiveIngredient: "Povidone Iodine", Category: "First Aid", PriceCents: 9500, Stock: 70, PrescriptionRequired: false},
		{ID: "MED028", Name: "Bandage Roll", ActiveIngredient: "Cotton Gauze", Category: "First Aid", PriceCents: 4200, Stock: 140, PrescriptionRequired: false},
	}
}
