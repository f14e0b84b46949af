package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerworker/internal/resume"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

func GetAgent(ctx context.Context, apiKey, modelName, agentName string) (agent.Agent, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	customAgent, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Improve resume sections",
		Instruction: resume.ImproveInstruction(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return customAgent, nil
}

// AgentImprover runs resume rewrites through an ADK runner. Each call gets
// its own short-lived session.
type AgentImprover struct {
	AppName  string
	Runner   *runner.Runner
	Sessions session.Service
}

func NewAgentImprover(ctx context.Context, apiKey, modelName string) (*AgentImprover, error) {
	improver, err := GetAgent(ctx, apiKey, modelName, "resume improver")
	if err != nil {
		return nil, err
	}
	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        improver.Name(),
		Agent:          improver,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &AgentImprover{AppName: improver.Name(), Runner: r, Sessions: sessions}, nil
}

func (a *AgentImprover) Improve(ctx context.Context, userID, message string) (string, error) {
	created, err := a.Sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.AppName,
		UserID:    userID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	sess := created.Session
	defer func() {
		_ = a.Sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
	}()

	stream := a.Runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: message},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", fmt.Errorf("empty agent response")
	}
	return output, nil
}
