package patient

// DemoPatients is the seed roster used by the in-memory store.
func DemoPatients() []Patient {
	return []Patient{
		{
			ID: "PAT001", Name: "Ravi Deshmukh", Email: "ravi.deshmukh@example.com",
			Phone: "+919812345001", PreferredLanguage: "mr",
			Allergies:          []string{"Ibuprofen"},
			PrescriptionOnFile: true,
		},
		{
			ID: "PAT002", Name: "Meera Iyer", Email: "meera.iyer@example.com",
			Phone: "+919812345002", PreferredLanguage: "en",
			Allergies:          []string{"Amoxicillin", "Azithromycin"},
			PrescriptionOnFile: false,
		},
		{
			ID: "PAT003", Name: "Arjun Singh", Email: "arjun.singh@example.com",
			Phone: "+919812345003", PreferredLanguage: "hi",
			Allergies:          nil,
			PrescriptionOnFile: true,
		},
	}
}
