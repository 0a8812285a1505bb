package explain

import "fmt"

const systemPrompt = `Du bist ein hilfreicher Assistent, der präzise und verständliche Erklärungen auf Deutsch gibt.
Antworte nur mit der Erklärung, ohne Einleitung und ohne Markdown-Überschriften.`

const connectionPrompt = `Sage "API-Verbindung erfolgreich getestet" und nenne das aktuelle Modell.`

func BuildUserPrompt(question string, correctAnswer bool) string {
	verdict, label := "FALSCH", "Falsch"
	if correctAnswer {
		verdict, label = "RICHTIG", "Richtig"
	}

	return fmt.Sprintf(
		"Erkläre, warum die folgende Aussage %s ist:\n\n"+
			"Frage: %s\n"+
			"Korrekte Antwort: %s\n\n"+
			"Bitte gib eine ausführliche, verständliche Erklärung auf Deutsch.",
		verdict, question, label,
	)
}
