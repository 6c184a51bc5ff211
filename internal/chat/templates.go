package chat

// DefaultLanguage is used when the requested language code is unsupported.
const DefaultLanguage = "en"

// templatePack holds every user-facing string for one language. Packs are
// built once at init and never mutated.
type templatePack struct {
	Greeting           string
	Help               string
	Confirmed          string
	NothingToConfirm   string
	NotFound           string
	ServiceUnavailable string
	SafetyAlert        string // verb: validator message
	FoundSingle        string // verbs: product name, rx note, line total
	FoundMulti         string // verbs: item list, total
	RxOnFile           string
	RejectedNote       string // verbs: product names, first reason
}

var templates = map[string]templatePack{
	"en": {
		Greeting:           "Hello! 👋 I'm your AI Pharmacist. I can help you order medicines, check your prescriptions, or refill your regular medications. What do you need today?",
		Help:               "I can help you with:\n• **Order medicines** — just tell me what you need\n• **Refill prescriptions** — I'll remember your regular medications\n• **Check drug safety** — I verify prescriptions and allergies\n• **Track orders** — see your order history\n\nTry saying something like \"I need paracetamol\" or \"refill my diabetes medicine\".",
		Confirmed:          "✅ Your order has been confirmed! The pharmacy will process it shortly. You'll receive a confirmation notification.\n\n📦 Estimated delivery: 30–60 minutes",
		NothingToConfirm:   "I don't have a pending order for you to confirm. Tell me which medicines you need and I'll put one together.",
		NotFound:           "I couldn't find a specific medicine in your message. Could you tell me the name of the medicine you need? For example: \"I need Dolo 650\" or \"something for headache\".",
		ServiceUnavailable: "Sorry, the pharmacy service is temporarily unavailable. Please try again in a moment.",
		SafetyAlert:        "⚠️ %s",
		FoundSingle:        "I found **%s** for you. %sThe total would be **₹%.2f**. Would you like to confirm the order?",
		FoundMulti:         "I found the following medicines for you: %s. Total: **₹%.2f**. Would you like to confirm?",
		RxOnFile:           "✅ Your prescription is on file. ",
		RejectedNote:       "\n\n⚠️ Note: %s could not be added — %s",
	},
	"hi": {
		Greeting:           "नमस्ते! 👋 मैं आपका AI फार्मासिस्ट हूँ। मैं आपको दवाइयाँ ऑर्डर करने, प्रिस्क्रिप्शन चेक करने, या नियमित दवाइयाँ रिफ़िल करने में मदद कर सकता हूँ। आज आपको क्या चाहिए?",
		Help:               "मैं आपकी इन चीज़ों में मदद कर सकता हूँ:\n• **दवाइयाँ ऑर्डर करें** — बस बताइए आपको क्या चाहिए\n• **प्रिस्क्रिप्शन रिफ़िल** — मैं आपकी नियमित दवाइयाँ याद रखूँगा\n• **दवा सुरक्षा जाँच** — मैं प्रिस्क्रिप्शन और एलर्जी जाँचता हूँ\n• **ऑर्डर ट्रैक करें** — अपना ऑर्डर इतिहास देखें\n\nजैसे: \"मुझे पेरासिटामोल चाहिए\" या \"मेरी डायबिटीज की दवा रिफ़िल करो\"।",
		Confirmed:          "✅ आपका ऑर्डर कन्फ़र्म हो गया है! फार्मेसी शीघ्र ही इसे प्रोसेस करेगी। आपको कन्फ़र्मेशन नोटिफ़िकेशन मिलेगा।\n\n📦 अनुमानित डिलीवरी: 30–60 मिनट",
		NothingToConfirm:   "कन्फ़र्म करने के लिए कोई ऑर्डर नहीं है। बताइए आपको कौन सी दवाइयाँ चाहिए, मैं ऑर्डर तैयार कर दूँगा।",
		NotFound:           "मुझे आपके मैसेज में कोई दवाई नहीं मिली। कृपया दवाई का नाम बताइए। जैसे: \"मुझे Dolo 650 चाहिए\" या \"सिरदर्द के लिए कुछ दो\"।",
		ServiceUnavailable: "क्षमा करें, फार्मेसी सेवा अभी उपलब्ध नहीं है। कृपया थोड़ी देर बाद फिर कोशिश करें।",
		SafetyAlert:        "⚠️ %s",
		FoundSingle:        "मुझे **%s** मिली। %sकुल राशि **₹%.2f** होगी। क्या आप ऑर्डर कन्फ़र्म करना चाहते हैं?",
		FoundMulti:         "मुझे ये दवाइयाँ मिलीं: %s। कुल: **₹%.2f**। क्या आप कन्फ़र्म करना चाहते हैं?",
		RxOnFile:           "✅ आपका प्रिस्क्रिप्शन फाइल में है। ",
		RejectedNote:       "\n\n⚠️ ध्यान दें: %s नहीं जोड़ा जा सका — %s",
	},
	"mr": {
		Greeting:           "नमस्कार! 👋 मी तुमचा AI फार्मासिस्ट आहे. मी तुम्हाला औषधे ऑर्डर करण्यात, प्रिस्क्रिप्शन तपासण्यात किंवा नियमित औषधे रिफिल करण्यात मदत करू शकतो. आज तुम्हाला काय हवे आहे?",
		Help:               "मी तुम्हाला या गोष्टींमध्ये मदत करू शकतो:\n• **औषधे ऑर्डर करा** — फक्त सांगा काय हवे आहे\n• **प्रिस्क्रिप्शन रिफिल** — मी तुमची नियमित औषधे लक्षात ठेवतो\n• **औषध सुरक्षितता तपासणी** — मी प्रिस्क्रिप्शन आणि अॅलर्जी तपासतो\n• **ऑर्डर ट्रॅक करा** — तुमचा ऑर्डर इतिहास पहा\n\nउदा: \"मला पॅरासिटामॉल हवे\" किंवा \"माझ्या डायबिटीजचे औषध रिफिल करा\".",
		Confirmed:          "✅ तुमचा ऑर्डर कन्फर्म झाला आहे! फार्मसी लवकरच प्रक्रिया करेल. तुम्हाला कन्फर्मेशन सूचना मिळेल.\n\n📦 अंदाजे डिलिव्हरी: 30–60 मिनिटे",
		NothingToConfirm:   "कन्फर्म करण्यासाठी कोणताही ऑर्डर नाही. तुम्हाला कोणती औषधे हवी आहेत ते सांगा, मी ऑर्डर तयार करतो.",
		NotFound:           "मला तुमच्या संदेशात कोणतेही विशिष्ट औषध सापडले नाही. कृपया औषधाचे नाव सांगा. उदा: \"मला Dolo 650 हवे\" किंवा \"डोकेदुखीसाठी काहीतरी द्या\".",
		ServiceUnavailable: "क्षमस्व, फार्मसी सेवा सध्या उपलब्ध नाही. कृपया थोड्या वेळाने पुन्हा प्रयत्न करा.",
		SafetyAlert:        "⚠️ %s",
		FoundSingle:        "मला **%s** सापडले. %sएकूण रक्कम **₹%.2f** असेल. तुम्ही ऑर्डर कन्फर्म करू इच्छिता?",
		FoundMulti:         "मला ही औषधे सापडली: %s. एकूण: **₹%.2f**. तुम्ही कन्फर्म करू इच्छिता?",
		RxOnFile:           "✅ तुमचे प्रिस्क्रिप्शन फाइलमध्ये आहे. ",
		RejectedNote:       "\n\n⚠️ लक्षात ठेवा: %s जोडता आले नाही — %s",
	},
}

// templatesFor returns the pack for lang, falling back to the default
// language for unsupported codes.
func templatesFor(lang string) templatePack {
	if t, ok := templates[lang]; ok {
		return t
	}
	return templates[DefaultLanguage]
}

// SupportedLanguages lists the language codes with a template pack.
func SupportedLanguages() []string {
	return []string{"en", "hi", "mr"}
}

// Intent keyword lists. Classification is language-agnostic string
// containment, so each list carries entries for every supported language.
var (
	greetingWords = []string{
		"hello", "hi", "hey", "good morning", "good evening", "howdy",
		"नमस्ते", "नमस्कार", "हेलो", "हाय",
	}
	helpKeywords = []string{
		"help", "what can you do", "what do you do", "how does this work",
		"मदद", "सहायता", "काय करता", "काय करू शकतो",
	}
	confirmKeywords = []string{
		"confirm", "yes", "place order", "order it", "go ahead", "proceed",
		"हाँ", "हां", "कन्फ़र्म", "ऑर्डर करो", "हो", "होय",
	}
)
