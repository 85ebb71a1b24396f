package services

import "strings"

// assistantResponses maps keyword groups to canned assistant replies, checked
// in order. The first group with a keyword present in the user message wins.
var assistantResponses = []struct {
	keywords    []string
	messageType string
	reply       string
}{
	{
		keywords:    []string{"headache", "head"},
		messageType: "symptom",
		reply: "I understand you're experiencing a headache. Here are some general suggestions:\n\n" +
			"• Stay hydrated - drink plenty of water\n" +
			"• Rest in a quiet, dark room\n" +
			"• Apply a cold or warm compress\n" +
			"• Consider over-the-counter pain relief\n\n" +
			"If your headache is severe, sudden, or accompanied by fever, vision changes, or neck stiffness, please consult a healthcare professional immediately.",
	},
	{
		keywords:    []string{"fever", "temperature"},
		messageType: "symptom",
		reply: "Fever can be concerning. Here's what I recommend:\n\n" +
			"• Monitor your temperature regularly\n" +
			"• Stay hydrated with water and clear fluids\n" +
			"• Rest and avoid strenuous activity\n" +
			"• Use fever reducers as directed\n\n" +
			"Seek immediate medical attention if fever exceeds 103°F (39.4°C), or if you experience difficulty breathing, chest pain, or severe symptoms.",
	},
	{
		keywords:    []string{"first aid", "emergency"},
		messageType: "emergency",
		reply: "I can guide you through various first aid scenarios:\n\n" +
			"• Cuts and wounds\n" +
			"• Burns\n" +
			"• Choking\n" +
			"• Fainting\n\n" +
			"For life-threatening emergencies, call emergency services immediately. Which type of first aid guidance do you need?",
	},
	{
		keywords:    []string{"medicine", "medication"},
		messageType: "medication",
		reply: "I can help you with medication management:\n\n" +
			"• Set up medication reminders\n" +
			"• Track your medication schedule\n" +
			"• Provide information about common medications\n" +
			"• Help you remember to take your medicines\n\n" +
			"What specific medication help do you need?",
	},
	{
		keywords:    []string{"period", "menstrual"},
		messageType: "period",
		reply: "I can help you with period tracking and management:\n\n" +
			"• Track your menstrual cycle\n" +
			"• Predict your next period\n" +
			"• Monitor symptoms and mood\n" +
			"• Provide health insights\n\n" +
			"Would you like to start tracking your period or get cycle predictions?",
	},
}

const defaultAssistantReply = "Thank you for sharing that with me. While I can provide general health information, " +
	"I recommend consulting with a healthcare professional for personalized medical advice. " +
	"Is there anything specific you'd like to know about your symptoms or general health practices?"

// RespondToMessage produces the assistant reply and its message type for a
// user message. Keyword rules only; no external model calls.
func RespondToMessage(userMessage string) (string, string) {
	normalized := strings.ToLower(userMessage)
	for _, rule := range assistantResponses {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.reply, rule.messageType
			}
		}
	}
	return defaultAssistantReply, "text"
}
