package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"SehatCare/util"

	"github.com/rs/zerolog/log"
)

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator is set at startup when an API key is configured.
var Generator TextGenerator

const symptomPrompt = `
A patient reports the following symptoms: "%[1]s".
Provide a structured diagnosis in the following format:

Diagnosis:
Okay, here's a brief diagnostic overview based on the patient's report of "%[1]s":

1] Common Causes:
- Condition Name: Key Symptoms.

2] Serious Causes:
- Condition Name: Key Symptoms.

3] Rare Possibilities:
- Condition Name: Key Symptoms.

Urgent Medical Indicators:
- List 1 to 3 signs that require immediate medical attention.

Disclaimer: "Consult a doctor for accurate diagnosis."
Do not use ** or bold.

Keep it concise (5-6 lines max).
`

const counselorContext = "You are a virtual counselor specialized in women's healthcare, including physical health, mental well-being, and emergency health assistance. " +
	"Do give brief answers. Reply in paragraphs, no bullet points needed. Be friendly and engage in lighthearted conversation. " +
	"Keep answers to around 1-2 lines and, at the end, make the person feel happy and jolly."

const safetyTipsHeading = "**Women's Safety Tips**"

func SymptomPrompt(symptoms string) string {
	return fmt.Sprintf(symptomPrompt, symptoms)
}

func generate(ctx context.Context, prompt string) (string, error) {
	if Generator == nil {
		return "", util.Upstream(util.AI_UNAVAILABLE)
	}
	text, err := Generator.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Error from generator")
		return "", util.Upstream(util.AI_UNAVAILABLE)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", util.Upstream(util.EMPTY_AI_RESPONSE)
	}
	return text, nil
}

func CheckSymptoms(ctx context.Context, symptoms string) (string, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return "", util.Validation(util.SYMPTOMS_REQUIRED)
	}
	return generate(ctx, SymptomPrompt(symptoms))
}

type CounselorReply struct {
	Formatted string `json:"formatted"`
	Clean     string `json:"clean"`
}

func Counsel(ctx context.Context, message string) (*CounselorReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, util.Validation(util.MESSAGE_REQUIRED)
	}
	text, err := generate(ctx, counselorContext+"\n\nUser's question: "+message)
	if err != nil {
		return nil, err
	}
	reply := FormatCounselorReply(text)
	return &reply, nil
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	numberedRe   = regexp.MustCompile(`(\d+\.)\s*`)
	blankLinesRe = regexp.MustCompile(`\n{2,}`)
	numberedLine = regexp.MustCompile(`^(\d+)\.\s`)
)

/*
* Collapse whitespace and start every "N." on its own line
* Lines that are not numbered get the next number
* A numbered line resets the counter to follow it
* The clean form joins the lines with spaces
 */
func FormatCounselorReply(text string) CounselorReply {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = numberedRe.ReplaceAllString(text, "\n$1 ")
	text = strings.TrimSpace(blankLinesRe.ReplaceAllString(text, "\n"))

	lines := []string{}
	counter := 1
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch m := numberedLine.FindStringSubmatch(line); {
		case strings.HasPrefix(line, safetyTipsHeading):
			lines = append(lines, line)
		case m != nil:
			lines = append(lines, line)
			n, _ := strconv.Atoi(m[1])
			counter = n + 1
		default:
			lines = append(lines, fmt.Sprintf("%d. %s", counter, line))
			counter++
		}
	}

	clean := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, safetyTipsHeading) {
			line = "Women's Safety Tips"
		}
		clean[i] = line
	}
	return CounselorReply{
		Formatted: strings.Join(lines, "\n"),
		Clean:     strings.Join(clean, " "),
	}
}
