package reflection

import (
	"fmt"
	"strings"
)

// Deterministic, model-free substitutes used by the orchestrator when the
// primary generation path fails.

// GenerateFallback renders a shorter but structurally similar reflection by
// template substitution. With no verses it emits a verse-free encouragement.
func GenerateFallback(in GenerateInput) string {
	if len(in.Verses) == 0 {
		return verseFreeFallback
	}

	v := in.Verses[0]
	label := in.Emotion.Label
	if label == "" {
		label = "seeking guidance"
	}
	emoji := in.Emotion.Emoji
	if emoji == "" {
		emoji = "🙏"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**🙏 Beloved soul, I sense you're experiencing %s %s, and I want you to know that your feelings are completely valid and sacred.**\n\n", label, emoji)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "## 📖 **Verse %d.%d**\n\n", v.Chapter, v.Verse)
	b.WriteString("### **Sanskrit (देवनागरी):**\n```sanskrit\n")
	b.WriteString(v.Shloka)
	b.WriteString("\n```\n\n### **Transliteration:**\n```\n")
	b.WriteString(v.Transliteration)
	b.WriteString("\n```\n\n### **English Translation:**\n> *")
	b.WriteString(v.EnglishMeaning)
	b.WriteString("*\n\n---\n\n")
	b.WriteString("## 💫 **Divine Wisdom**\n\n")
	b.WriteString("**This ancient teaching reminds us that all emotions are temporary visitors in the vast space of our being. They come to teach us, not to define us. The Bhagavad Gita shows us how to observe our feelings with compassion while staying connected to our deeper, unchanging essence.**\n\n")
	b.WriteString("### 🌟 **Gentle Guidance:**\n")
	b.WriteString("- **Breathe deeply** and allow your emotions to be present without resistance\n")
	b.WriteString("- **Remember** that this too shall pass, like clouds across the sky\n")
	b.WriteString("- **Trust** in your inner strength, which is greater than any temporary storm\n\n")
	b.WriteString("---\n\n")
	b.WriteString("## 🤔 **Reflective Questions**\n\n")
	b.WriteString("**What would it feel like to hold your current experience with the same tenderness you'd offer a dear friend?**\n\n")
	b.WriteString("**How might this verse's wisdom apply to your unique situation right now?**\n\n")
	b.WriteString("---\n\n")
	b.WriteString("**🕉️ सर्वं खल्विदं ब्रह्म**\n")
	b.WriteString("*All of this is indeed the Divine - including your pain, your questions, and your journey toward peace.*")

	return b.String()
}

const verseFreeFallback = `**🙏 Beloved seeker, I understand you're seeking guidance.**

While I'm experiencing technical difficulties connecting to my full wisdom, please know that every challenge is an opportunity for growth and self-reflection.

---

## 💫 **Eternal Truth**

The Bhagavad Gita teaches us that all experiences - joy and sorrow, gain and loss - are temporary waves on the ocean of consciousness. Your current struggle is not a punishment, but a sacred invitation to discover your inner strength.

---

## 🤔 **For Your Reflection**

**What would it mean to meet this moment with compassion for yourself?**

**How might this challenge be preparing you for greater wisdom and service?**

---

**🕉️ शान्तिः शान्तिः शान्तिः**
*Peace, peace, peace - may peace fill your heart.*`

// CasualFallback is the deterministic small-talk reply.
func CasualFallback(userInput string) string {
	trimmed := strings.ToLower(strings.TrimSpace(userInput))
	if strings.Contains(trimmed, "thank") {
		return "🙏 You're most welcome. May your path be peaceful - I'm here whenever you wish to talk."
	}
	return "🙏 Namaste! I'm Saarthi, your spiritual companion. I'm here to help you find wisdom from the Bhagavad Gita. How can I support you today?"
}

// Last-resort strings used when even the template fallback fails.

// LastResortCasual is the fixed casual-path message.
const LastResortCasual = "🙏 Namaste! I'm Saarthi, your spiritual companion. I'm here to help you find wisdom from the Bhagavad Gita. How can I support you today?"

// LastResortWithVerse embeds the first verse into the fixed templated
// message used for the emotional and spiritual paths.
func LastResortWithVerse(in GenerateInput) string {
	if len(in.Verses) == 0 {
		return "I'm here to provide guidance from the Bhagavad Gita. Please share what's on your mind."
	}

	v := in.Verses[0]
	label := in.Emotion.Label
	if label == "" {
		label = "seeking guidance"
	}

	return fmt.Sprintf(`I understand you're %s. Here's a verse that may provide guidance:

**Verse %d.%d:**

Sanskrit: %s

English: %s

This ancient wisdom reminds us that we can find peace and clarity even in challenging times. Take a moment to reflect on how this teaching might apply to your current situation.`,
		label, v.Chapter, v.Verse, v.Shloka, v.EnglishMeaning)
}
