package reply

// DefaultTemplates returns the built-in templates for pt, en, es, fr and de.
func DefaultTemplates() map[string]Template {
	return map[string]Template{
		"pt": {
			Labels:      Labels{Assessment: "1) Diagnóstico", Explanation: "2) Explicação", Resolution: "3) Resolução"},
			Assessment:  "Com base na sua mensagem, vou oferecer uma orientação estruturada.",
			Explanation: "Relacionamentos envolvem padrões de comunicação, expectativas e dinâmicas emocionais. Entender esses elementos ajuda a lidar com os desafios.",
			Steps: []string{
				"Identifique o padrão específico que você quer trabalhar",
				`Expresse suas necessidades com clareza usando frases em primeira pessoa ("eu sinto...")`,
				"Escute para entender, não apenas para responder",
			},
			SafetyMessage: "Eu me importo com sua segurança. Fale com um adulto de confiança agora.",
		},
		"en": {
			Labels:      Labels{Assessment: "1) Assessment", Explanation: "2) Explanation", Resolution: "3) Resolution"},
			Assessment:  "Based on your message, I'll provide structured guidance.",
			Explanation: "Relationships involve communication patterns, expectations, and emotional dynamics. Understanding these helps navigate challenges.",
			Steps: []string{
				"Identify the specific pattern you want to address",
				`Express needs clearly using "I" statements`,
				"Listen to understand, not just respond",
			},
			SafetyMessage: "I care about your safety. Please talk to a trusted adult right now.",
		},
		"es": {
			Labels:      Labels{Assessment: "1) Evaluación", Explanation: "2) Explicación", Resolution: "3) Resolución"},
			Assessment:  "Según tu mensaje, te daré una orientación estructurada.",
			Explanation: "Las relaciones implican patrones de comunicación, expectativas y dinámicas emocionales. Comprenderlos ayuda a afrontar los desafíos.",
			Steps: []string{
				"Identifica el patrón específico que quieres trabajar",
				`Expresa tus necesidades con claridad usando frases en primera persona ("yo siento...")`,
				"Escucha para entender, no solo para responder",
			},
			SafetyMessage: "Me importa tu seguridad. Habla con un adulto de confianza ahora.",
		},
		"fr": {
			Labels:      Labels{Assessment: "1) Évaluation", Explanation: "2) Explication", Resolution: "3) Résolution"},
			Assessment:  "D'après ton message, voici des conseils structurés.",
			Explanation: "Les relations reposent sur des habitudes de communication, des attentes et des dynamiques émotionnelles. Les comprendre aide à surmonter les difficultés.",
			Steps: []string{
				"Identifie le comportement précis que tu veux aborder",
				`Exprime tes besoins clairement avec des phrases en « je »`,
				"Écoute pour comprendre, pas seulement pour répondre",
			},
			SafetyMessage: "Ta sécurité compte. Parle à un adulte de confiance maintenant.",
		},
		"de": {
			Labels:      Labels{Assessment: "1) Einschätzung", Explanation: "2) Erklärung", Resolution: "3) Lösung"},
			Assessment:  "Auf Grundlage deiner Nachricht gebe ich dir eine strukturierte Orientierung.",
			Explanation: "Beziehungen bestehen aus Kommunikationsmustern, Erwartungen und emotionalen Dynamiken. Sie zu verstehen hilft, Herausforderungen zu meistern.",
			Steps: []string{
				"Benenne das konkrete Muster, das du angehen möchtest",
				`Drücke deine Bedürfnisse klar mit Ich-Botschaften aus`,
				"Höre zu, um zu verstehen, nicht nur um zu antworten",
			},
			SafetyMessage: "Deine Sicherheit ist wichtig. Sprich jetzt mit einer vertrauten Person.",
		},
	}
}
