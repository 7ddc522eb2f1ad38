package intake

import "strings"

// Supported conversation languages. Anything else falls back to English.
const (
	LangEnglish = "English"
	LangHindi   = "Hindi"
	LangKannada = "Kannada"
)

// questionBank holds the localized prompt for every intake field. Keys with a
// _self or _other suffix handle "your" vs "the patient's" phrasing; the suffix
// is chosen from patient_relation.
var questionBank = map[string]map[string]string{
	"patient_relation": {
		LangEnglish: "Hello! Welcome to Amrutha.AI. I am Virtual Patient Onboarding Receptionist.Who is this appointment for? (Yourself, Parents, Child, Friend)",
		LangHindi:   "नमस्ते!Amrutha.AI में आपका स्वागत है.मैं वर्चुअल पेशेंट ऑनबोर्डिंग रिसेप्शनिस्ट हूँ।.यह अपॉइंटमेंट किसके लिए है? (आप खुद, माता-पिता, बच्चे, या दोस्त)",
		LangKannada: "ನಮಸ್ಕಾರ! ಅಮೃತ.ಎಐ ಗೆ ಸುಸ್ವಾಗತ.ನಾನು ವರ್ಚುವಲ್ ರೋಗಿಯ ಆನ್‌ಬೋರ್ಡಿಂಗ್ ಸ್ವಾಗತಕಾರ.. ಈ ಅಪಾಯಿಂಟ್‌ಮೆಂಟ್ ಯಾರಿಗಾಗಿ? (ನೀವು, ಪೋಷಕರು, ಮಕ್ಕಳು, ಸ್ನೇಹಿತರು)",
	},

	"name_self": {
		LangEnglish: "Could you please tell me your full name?",
		LangHindi:   "कृपया अपना पूरा नाम बताएं?",
		LangKannada: "ದಯವಿಟ್ಟು ನಿಮ್ಮ ಪೂರ್ಣ ಹೆಸರನ್ನು ಹೇಳಿ?",
	},
	"name_other": {
		LangEnglish: "Could you please tell me the patient's full name?",
		LangHindi:   "कृपया मरीज का पूरा नाम बताएं?",
		LangKannada: "ದಯವಿಟ್ಟು ರೋಗಿಯ ಪೂರ್ಣ ಹೆಸರನ್ನು ಹೇಳಿ?",
	},

	"age_self": {
		LangEnglish: "Thanks {name}. How old are you?",
		LangHindi:   "धन्यवाद {name}. आपकी उम्र क्या है?",
		LangKannada: "ಧನ್ಯವಾದಗಳು {name}. ನಿಮ್ಮ ವಯಸ್ಸು ಎಷ್ಟು?",
	},
	"age_other": {
		LangEnglish: "Thanks. How old is {name}?",
		LangHindi:   "धन्यवाद। {name} की उम्र क्या है?",
		LangKannada: "ಧನ್ಯವಾದಗಳು. {name} ಅವರ ವಯಸ್ಸು ಎಷ್ಟು?",
	},

	"gender_self": {
		LangEnglish: "What is your gender? (Male, Female, Other)",
		LangHindi:   "आपका लिंग क्या है? (पुरुष, महिला, अन्य)",
		LangKannada: "ನಿಮ್ಮ ಲಿಂಗ ಯಾವುದು? (ಗಂಡು, ಹೆಣ್ಣು, ಇತರೆ)",
	},
	"gender_other": {
		LangEnglish: "What is the patient's gender? (Male, Female, Other)",
		LangHindi:   "मरीज का लिंग क्या है? (पुरुष, महिला, अन्य)",
		LangKannada: "ರೋಗಿಯ ಲಿಂಗ ಯಾವುದು? (ಗಂಡು, ಹೆಣ್ಣು, ಇತರೆ)",
	},

	"phone": {
		LangEnglish: "Please share your 10-digit phone number.",
		LangHindi:   "कृपया अपना 10 अंकों का फोन नंबर साझा करें।",
		LangKannada: "ದಯವಿಟ್ಟು ನಿಮ್ಮ 10 ಅಂಕಿಗಳ ಫೋನ್ ಸಂಖ್ಯೆಯನ್ನು ಹಂಚಿಕೊಳ್ಳಿ.",
	},

	"email": {
		LangEnglish: "Please provide your email address. We will send the report here.",
		LangHindi:   "कृपया अपना ईमेल पता दें। हम रिपोर्ट यहीं भेजेंगे।",
		LangKannada: "ದಯವಿಟ್ಟು ನಿಮ್ಮ ಇಮೇಲ್ ವಿಳಾಸವನ್ನು ನೀಡಿ. ನಾವು ವರದಿಯನ್ನು ಇಲ್ಲಿಗೆ ಕಳುಹಿಸುತ್ತೇವೆ.",
	},

	"location": {
		LangEnglish: "Where are you currently located (City)?",
		LangHindi:   "आप वर्तमान में कहाँ स्थित हैं (शहर)?",
		LangKannada: "ನೀವು ಪ್ರಸ್ತುತ ಎಲ್ಲಿದ್ದೀರಿ (ನಗರ)?",
	},

	"weight_self": {
		LangEnglish: "What is your approximate weight (in kg)?",
		LangHindi:   "आपका अनुमानित वजन (किलो में) क्या है?",
		LangKannada: "ನಿಮ್ಮ ಅಂದಾಜು ತೂಕ (ಕೆಜಿಗಳಲ್ಲಿ) ಎಷ್ಟು?",
	},
	"weight_other": {
		LangEnglish: "What is {name}'s approximate weight (in kg)?",
		LangHindi:   "{name} का अनुमानित वजन (किलो में) क्या है?",
		LangKannada: "{name} ಅವರ ಅಂದಾಜು ತೂಕ (ಕೆಜಿಗಳಲ್ಲಿ) ಎಷ್ಟು?",
	},

	"blood_group_self": {
		LangEnglish: "What is your Blood Group? (e.g. A+, O-, Don't Know)",
		LangHindi:   "आपका ब्लड ग्रुप क्या है? (जैसे A+, O-, पता नहीं)",
		LangKannada: "ನಿಮ್ಮ ರಕ್ತದ ಗುಂಪು ಯಾವುದು? (ಉದಾಹರಣೆಗೆ A+, O-, ಗೊತ್ತಿಲ್ಲ)",
	},
	"blood_group_other": {
		LangEnglish: "What is the patient's Blood Group?",
		LangHindi:   "मरीज का ब्लड ग्रुप क्या है?",
		LangKannada: "ರೋಗಿಯ ರಕ್ತದ ಗುಂಪು ಯಾವುದು?",
	},

	"symptoms_self": {
		LangEnglish: "Okay {name}, could you please describe your symptoms in detail?",
		LangHindi:   "ठीक है {name}, कृपया अपने लक्षणों का विस्तार से वर्णन करें?",
		LangKannada: "ಸರಿ {name}, ದಯವಿಟ್ಟು ನಿಮ್ಮ ರೋಗಲಕ್ಷಣಗಳನ್ನು ವಿವರವಾಗಿ ವಿವರಿಸಿ?",
	},
	"symptoms_other": {
		LangEnglish: "Okay, could you please describe {name}'s symptoms in detail?",
		LangHindi:   "ठीक है, कृपया {name} के लक्षणों का विस्तार से वर्णन करें?",
		LangKannada: "ಸರಿ, ದಯವಿಟ್ಟು {name} ಅವರ ರೋಗಲಕ್ಷಣಗಳನ್ನು ವಿವರವಾಗಿ ವಿವರಿಸಿ?",
	},

	"duration": {
		LangEnglish: "For how many days have these symptoms been present?",
		LangHindi:   "ये लक्षण कितने दिनों से हैं?",
		LangKannada: "ಈ ರೋಗಲಕ್ಷಣಗಳು ಎಷ್ಟು ದಿನಗಳಿಂದ ಇವೆ?",
	},

	"bp_history_self": {
		LangEnglish: "Do you have High Blood Pressure (BP)?",
		LangHindi:   "क्या आपको हाई ब्लड प्रेशर (BP) की समस्या है?",
		LangKannada: "ನಿಮಗೆ ರಕ್ತದೊತ್ತಡ (BP) ಇದೆಯೇ?",
	},
	"bp_history_other": {
		LangEnglish: "Does the patient have High Blood Pressure (BP)?",
		LangHindi:   "क्या मरीज को हाई ब्लड प्रेशर (BP) की समस्या है?",
		LangKannada: "ರೋಗಿಗೆ ರಕ್ತದೊತ್ತಡ (BP) ಇದೆಯೇ?",
	},

	"sugar_history_self": {
		LangEnglish: "Do you have Diabetes (Sugar)?",
		LangHindi:   "क्या आपको शुगर (Diabetes) की बीमारी है?",
		LangKannada: "ನಿಮಗೆ ಸಕ್ಕರೆ ಕಾಯಿಲೆ (Diabetes) ಇದೆಯೇ?",
	},
	"sugar_history_other": {
		LangEnglish: "Does the patient have Diabetes (Sugar)?",
		LangHindi:   "क्या मरीज को शुगर (Diabetes) की बीमारी है?",
		LangKannada: "ರೋಗಿಗೆ ಸಕ್ಕರೆ ಕಾಯಿಲೆ (Diabetes) ಇದೆಯೇ?",
	},

	"thyroid_history_self": {
		LangEnglish: "Do you have any Thyroid issues?",
		LangHindi:   "क्या आपको थायराइड की समस्या है?",
		LangKannada: "ನಿಮಗೆ ಥೈರಾಯ್ಡ್ ಸಮಸ್ಯೆ ಇದೆಯೇ?",
	},
	"thyroid_history_other": {
		LangEnglish: "Does the patient have any Thyroid issues?",
		LangHindi:   "क्या मरीज को थायराइड की समस्या है?",
		LangKannada: "ರೋಗಿಗೆ ಥೈರಾಯ್ಡ್ ಸಮಸ್ಯೆ ಇದೆಯೇ?",
	},

	"surgeries_self": {
		LangEnglish: "Have you had any past surgeries?",
		LangHindi:   "क्या आपकी पहले कोई सर्जरी हुई है?",
		LangKannada: "ನಿಮಗೆ ಹಿಂದೆ ಯಾವುದಾದರೂ ಶಸ್ತ್ರಚಿಕಿತ್ಸೆ ಆಗಿದೆಯೇ?",
	},
	"surgeries_other": {
		LangEnglish: "Has the patient had any past surgeries?",
		LangHindi:   "क्या मरीज की पहले कोई सर्जरी हुई है?",
		LangKannada: "ರೋಗಿಗೆ ಹಿಂದೆ ಯಾವುದಾದರೂ ಶಸ್ತ್ರಚಿಕಿತ್ಸೆ ಆಗಿದೆಯೇ?",
	},

	"medications_self": {
		LangEnglish: "Are you currently taking any medications?",
		LangHindi:   "क्या आप अभी कोई दवा ले रहे हैं?",
		LangKannada: "ನೀವು ಪ್ರಸ್ತುತ ಯಾವುದೇ ಔಷಧಿಗಳನ್ನು ತೆಗೆದುಕೊಳ್ಳುತ್ತಿದ್ದೀರಾ?",
	},
	"medications_other": {
		LangEnglish: "Is the patient currently taking any medications?",
		LangHindi:   "क्या मरीज अभी कोई दवा ले रहा है?",
		LangKannada: "ರೋಗಿ ಪ್ರಸ್ತುತ ಯಾವುದೇ ಔಷಧಿಗಳನ್ನು ತೆಗೆದುಕೊಳ್ಳುತ್ತಿದ್ದಾರೆಯೇ?",
	},

	"assigned_doctor": {
		LangEnglish: "Based on your symptoms, I have assigned you to **{doctor_name}**. Consultation fee: ₹500. Would you like to proceed?",
		LangHindi:   "आपके लक्षणों के आधार पर, मैंने आपको **{doctor_name}** के साथ नियुक्त किया है। परामर्श शुल्क: ₹500। क्या आप आगे बढ़ना चाहेंगे?",
		LangKannada: "ನಿಮ್ಮ ರೋಗಲಕ್ಷಣಗಳ ಆಧಾರದ ಮೇಲೆ, ನಾನು ನಿಮ್ಮನ್ನು **{doctor_name}** ಅವರಿಗೆ ನಿಯೋಜಿಸಿದ್ದೇನೆ. ಸಮಾಲೋಚನೆ ಶುಲ್ಕ: ₹500. ನೀವು ಮುಂದುವರಿಯಲು ಬಯಸುವಿರಾ?",
	},

	"selected_slot": {
		LangEnglish: "Please select a convenient appointment time:",
		LangHindi:   "कृपया एक सुविधाजनक अपॉइंटमेंट समय चुनें:",
		LangKannada: "ದಯವಿಟ್ಟು ಅನುಕೂಲಕರ ಅಪಾಯಿಂಟ್‌ಮೆಂಟ್ ಸಮಯವನ್ನು ಆಯ್ಕೆಮಾಡಿ:",
	},

	"payment_status": {
		LangEnglish: "Thank you {name}. Please pay ₹500 to confirm your appointment with {doctor_name}.",
		LangHindi:   "धन्यवाद {name}। कृपया {doctor_name} के साथ अपनी अपॉइंटमेंट की पुष्टि करने के लिए ₹500 का भुगतान करें।",
		LangKannada: "ಧನ್ಯವಾದಗಳು {name}. {doctor_name} ಅವರೊಂದಿಗೆ ನಿಮ್ಮ ಅಪಾಯಿಂಟ್‌ಮೆಂಟ್ ಖಚಿತಪಡಿಸಲು ದಯವಿಟ್ಟು ₹500 ಪಾವತಿಸಿ.",
	},
}

// Question returns the localized prompt for a question key, substituting
// {name} and {doctor_name} placeholders. Unknown languages and unknown keys
// fall back to English and a generic message respectively.
func Question(key, language string, vars map[string]string) string {
	templates, ok := questionBank[key]
	if !ok {
		return "Question not found."
	}
	template, ok := templates[language]
	if !ok {
		template = templates[LangEnglish]
	}
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
