package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

// ChatModel abstracts the language model behind conversation practice.
// Implementations send one roleplay turn and return the raw reply text.
type ChatModel interface {
	Reply(ctx context.Context, systemPrompt string, history []ChatTurn) (string, error)
}

// ChatTurn is one prior exchange in model wire format.
type ChatTurn struct {
	Role    string
	Content string
}

// ConversationReply is the structured tutor answer shown to the learner.
type ConversationReply struct {
	Arabic      string          `json:"arabic"`
	Latin       string          `json:"latin"`
	English     string          `json:"english"`
	Correction  string          `json:"correction,omitempty"`
	Suggestions []entity.Phrase `json:"suggestions,omitempty"`
}

// ConversationRequest carries one learner turn plus the scenario the
// session composer embedded in the game config.
type ConversationRequest struct {
	UserID   int64
	Message  string
	History  []entity.ConversationMessage
	Scenario entity.ScenarioSummary
}

// ConversationUsecase proxies conversation practice turns to the model.
type ConversationUsecase interface {
	Reply(ctx context.Context, req *ConversationRequest) (*ConversationReply, error)
}

type conversationUsecase struct {
	users repository.UserRepository
	model ChatModel
}

func NewConversationUsecase(users repository.UserRepository, model ChatModel) ConversationUsecase {
	return &conversationUsecase{users: users, model: model}
}

func (u *conversationUsecase) Reply(ctx context.Context, req *ConversationRequest) (*ConversationReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, entity.ErrEmptyChatTranscript
	}
	user, err := u.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	history := make([]ChatTurn, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := "assistant"
		if turn.Role == "user" {
			role = "user"
		}
		content := turn.Latin
		if content == "" {
			content = turn.Arabic
		}
		history = append(history, ChatTurn{Role: role, Content: content})
	}
	history = append(history, ChatTurn{Role: "user", Content: message})

	raw, err := u.model.Reply(ctx, buildSystemPrompt(user.Level, req.Scenario), history)
	if err != nil {
		return nil, err
	}
	return parseReply(raw), nil
}

// parseReply decodes the model's JSON answer. Replies that are not valid
// JSON (after stripping markdown fences) degrade to a plain Latin-only
// response instead of failing the turn.
func parseReply(raw string) *ConversationReply {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		if _, rest, found := strings.Cut(cleaned, "\n"); found {
			cleaned = rest
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var reply ConversationReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return &ConversationReply{Latin: raw}
	}
	return &reply
}

const systemPromptTemplate = `You are a friendly Moroccan conversation partner helping a language learner practice real everyday Darija.

## Scenario
%s

## Target Vocabulary
The student should practice these words/phrases: %s

## CRITICAL LANGUAGE RULES
- You MUST write EXCLUSIVELY in Moroccan Darija (the actual spoken dialect of Morocco).
- Do NOT use Modern Standard Arabic (Fusha) or formal Arabic. Only use words and expressions that real Moroccans use in daily life.
- Use ROMANIZED Darija with Moroccan number-letter conventions: 3=ain, 7=ha, 9=qaf, 5=kha, 2=hamza, 8=ha.
- Keep the language natural, casual, and exactly how Moroccans speak in daily life.

## Conversation Rules
1. Stay in character for the scenario. Keep the conversation natural and on-topic.
2. Adapt to the student's CEFR level %s: a1 very basic phrases, a2 simple sentences, b1 varied vocabulary and light idioms, b2 complex sentences with slang.
3. If the student makes a Darija mistake, gently correct it in the "correction" field and show the correct form. If their Darija is correct, set "correction" to null.
4. If the student goes off-topic or writes in pure English, redirect them kindly back to the scenario.
5. Provide 2 suggested responses the student could say next, also in romanized Darija. When the conversation has reached a natural conclusion, return an empty suggestions array.
6. Keep responses concise (1-3 sentences).

## Response Format
You MUST respond with valid JSON only, no other text:
{"arabic": "...", "latin": "...", "english": "...", "correction": null, "suggestions": [{"arabic": "...", "latin": "...", "english": "..."}]}`

func buildSystemPrompt(level entity.Level, scenario entity.ScenarioSummary) string {
	context := scenario.ScenarioPrompt
	if context == "" {
		context = scenario.Context
	}
	if context == "" {
		context = "General Darija conversation practice."
	}
	vocabulary := "common greetings, polite expressions"
	if len(scenario.TargetVocabulary) > 0 {
		vocabulary = strings.Join(scenario.TargetVocabulary, ", ")
	}
	return fmt.Sprintf(systemPromptTemplate, context, vocabulary, entity.NormalizeLevel(level).Code())
}
