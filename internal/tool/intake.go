package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grupokossodo/intake-agent/internal/llm"
	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/internal/store"
)

// Tool names.
const (
	ToolSetCompany      = "set_company"
	ToolSaveContact     = "save_contact"
	ToolSaveInquiry     = "save_inquiry"
	ToolEndConversation = "end_conversation"
)

func (r *Registry) registerBuiltins() {
	r.register(&Tool{
		Name: ToolSetCompany,
		Description: "Set the company that the client's inquiry is directed to. " +
			"Use this when the client indicates whether their inquiry is for Kossodo or Kossomet.",
		Params: map[string]llm.ToolParam{
			"company": {
				Type:        "string",
				Description: "The company name: 'kossodo' or 'kossomet'",
				Enum:        []string{string(model.CompanyKossodo), string(model.CompanyKossomet)},
			},
		},
		Required: []string{"company"},
		Handler:  r.handleSetCompany,
	})

	r.register(&Tool{
		Name: ToolSaveContact,
		Description: "Save or update the client's contact information. " +
			"Use this when the client provides their name, phone, email, company name, or RUC/DNI. " +
			"You can call this multiple times as the client provides more information. " +
			"RUC (11 digits) is for businesses, DNI (8 digits) is for individuals.",
		Params: map[string]llm.ToolParam{
			"name":         {Type: "string", Description: "The client's full name"},
			"phone":        {Type: "string", Description: "The client's phone number"},
			"email":        {Type: "string", Description: "The client's email address"},
			"company_name": {Type: "string", Description: "The name of the client's company or organization"},
			"ruc_dni":      {Type: "string", Description: "The client's RUC (business tax ID, 11 digits) or DNI (personal ID, 8 digits)"},
		},
		Handler: r.handleSaveContact,
	})

	r.register(&Tool{
		Name: ToolSaveInquiry,
		Description: "Save the client's inquiry or consultation details. " +
			"Use this when the client describes what product or service they are interested in, " +
			"or what information they need. Capture the full context of their request.",
		Params: map[string]llm.ToolParam{
			"description": {
				Type: "string",
				Description: "A detailed description of the client's inquiry, including what " +
					"product/service they need, quantities, or any specific requirements they mentioned.",
			},
		},
		Required: []string{"description"},
		Handler:  r.handleSaveInquiry,
	})

	r.register(&Tool{
		Name: ToolEndConversation,
		Description: "Mark the conversation as completed. " +
			"Use this when the client has provided all necessary information " +
			"(company, contact details, and inquiry) and you have informed them " +
			"that an advisor will contact them soon.",
		Params: map[string]llm.ToolParam{
			"summary": {Type: "string", Description: "Optional brief summary of the conversation, including key points discussed."},
		},
		Handler: r.handleEndConversation,
	})
}

func (r *Registry) handleSetCompany(ctx context.Context, conversationID int64, args map[string]any) (Result, error) {
	company := model.Company(strings.ToLower(strArg(args, "company")))
	if !company.Valid() {
		return Result{
			Success: false,
			Message: fmt.Sprintf("Invalid company: %s. Must be 'kossodo' or 'kossomet'.", company),
		}, nil
	}

	err := r.store.SetCompany(ctx, conversationID, company)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Result{Success: false, Message: "Conversation not found."}, nil
	case errors.Is(err, store.ErrConversationClosed):
		return Result{Success: false, Message: "Conversation is already closed."}, nil
	case err != nil:
		return Result{}, err
	}

	return Result{
		Success: true,
		Data:    map[string]any{"company": string(company)},
		Message: fmt.Sprintf("Company set to %s.", company),
	}, nil
}

func (r *Registry) handleSaveContact(ctx context.Context, conversationID int64, args map[string]any) (Result, error) {
	fields := model.ContactFields{
		Name:        strArg(args, "name"),
		Phone:       strArg(args, "phone"),
		Email:       strArg(args, "email"),
		CompanyName: strArg(args, "company_name"),
		RUCDNI:      strArg(args, "ruc_dni"),
	}
	if fields.Empty() {
		return Result{Success: false, Message: "At least one contact field must be provided."}, nil
	}

	contact, err := r.store.UpsertContact(ctx, conversationID, fields)
	if err != nil {
		return Result{}, err
	}

	var saved []string
	if fields.Name != "" {
		saved = append(saved, "name: "+fields.Name)
	}
	if fields.Phone != "" {
		saved = append(saved, "phone: "+fields.Phone)
	}
	if fields.Email != "" {
		saved = append(saved, "email: "+fields.Email)
	}
	if fields.CompanyName != "" {
		saved = append(saved, "company: "+fields.CompanyName)
	}
	if fields.RUCDNI != "" {
		saved = append(saved, "ruc_dni: "+fields.RUCDNI)
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"contact_id":   contact.ID,
			"name":         contact.Name,
			"phone":        contact.Phone,
			"email":        contact.Email,
			"company_name": contact.CompanyName,
			"ruc_dni":      contact.RUCDNI,
		},
		Message: "Contact information saved: " + strings.Join(saved, ", ") + ".",
	}, nil
}

func (r *Registry) handleSaveInquiry(ctx context.Context, conversationID int64, args map[string]any) (Result, error) {
	description := strArg(args, "description")
	if description == "" {
		return Result{Success: false, Message: "Inquiry description cannot be empty."}, nil
	}

	inquiry, err := r.store.UpsertInquiry(ctx, conversationID, description)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"inquiry_id":  inquiry.ID,
			"description": inquiry.Description,
		},
		Message: "Inquiry saved successfully.",
	}, nil
}

func (r *Registry) handleEndConversation(ctx context.Context, conversationID int64, args map[string]any) (Result, error) {
	summary := strArg(args, "summary")

	err := r.store.SetStatus(ctx, conversationID, model.StatusCompleted)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Result{Success: false, Message: "Conversation not found."}, nil
	case errors.Is(err, store.ErrConversationClosed):
		return Result{Success: false, Message: "Conversation is already closed."}, nil
	case err != nil:
		return Result{}, err
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"status":  string(model.StatusCompleted),
			"summary": summary,
		},
		Message: "Conversation marked as completed.",
	}, nil
}
