package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// defaultHistoryLimit caps onboarding_history when no limit is given.
const defaultHistoryLimit = 20

// ListUsersInput is the input schema for the user listing tools.
type ListUsersInput struct{}

// OnboardAWSInput is the input schema for the onboard_aws_account tool.
type OnboardAWSInput struct {
	AccountID    string `json:"account_id" jsonschema:"the 12 digit AWS account id"`
	AccountName  string `json:"account_name" jsonschema:"display name of the account in Pileus"`
	BucketName   string `json:"bucket_name,omitempty" jsonschema:"CUR bucket name (default cur-<account_id>)"`
	BucketRegion string `json:"bucket_region,omitempty" jsonschema:"CUR bucket region (default from settings)"`
}

func (in OnboardAWSInput) request() domain.AWSOnboarding {
	return domain.AWSOnboarding{
		AccountID:    in.AccountID,
		AccountName:  in.AccountName,
		BucketName:   in.BucketName,
		BucketRegion: in.BucketRegion,
	}
}

// OnboardMSPInput is the input schema for the onboard_aws_account_msp tool.
type OnboardMSPInput struct {
	AccountID    string `json:"account_id" jsonschema:"the 12 digit AWS account id"`
	AccountName  string `json:"account_name" jsonschema:"display name of the account in Pileus"`
	BucketName   string `json:"bucket_name,omitempty" jsonschema:"CUR bucket name (default cur-<account_id>)"`
	BucketRegion string `json:"bucket_region,omitempty" jsonschema:"CUR bucket region (default from settings)"`

	AccountType                string `json:"account_type" jsonschema:"dedicated or shared"`
	ResellerCustomerName       string `json:"reseller_customer_name" jsonschema:"name of the reseller customer"`
	ResellerCustomerID         string `json:"reseller_customer_id,omitempty" jsonschema:"existing reseller customer id"`
	CustomerSelfManaged        bool   `json:"customer_self_managed,omitempty" jsonschema:"whether the customer manages the account"`
	ResellerCustomerDomain     string `json:"reseller_customer_domain,omitempty" jsonschema:"customer domain, required when self managed"`
	AutoAssignLinkedAccounts   bool   `json:"auto_assign_linked_accounts,omitempty" jsonschema:"assign linked accounts automatically"`
	ExcludedLinkedAccountMatch string `json:"excluded_linked_account_match,omitempty" jsonschema:"pattern of linked accounts to skip"`
}

// OnboardOutput is the output schema for the onboarding tools.
type OnboardOutput struct {
	RecordID   string `json:"record_id"`
	Status     string `json:"status"`
	ScriptPath string `json:"script_path,omitempty"`
	Warning    string `json:"warning,omitempty"`
	Response   any    `json:"response,omitempty"`
}

// HistoryInput is the input schema for the onboarding_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default 20)"`
}

// HistoryOutput is the output schema for the onboarding_history tool.
type HistoryOutput struct {
	Records []HistoryEntry `json:"records"`
	Count   int            `json:"count"`
}

// HistoryEntry is one onboarding attempt.
type HistoryEntry struct {
	ID                   string `json:"id"`
	Mode                 string `json:"mode"`
	AccountID            string `json:"account_id"`
	AccountName          string `json:"account_name"`
	BucketName           string `json:"bucket_name"`
	BucketRegion         string `json:"bucket_region"`
	AccountType          string `json:"account_type,omitempty"`
	ResellerCustomerName string `json:"reseller_customer_name,omitempty"`
	Status               string `json:"status"`
	Error                string `json:"error,omitempty"`
	ScriptPath           string `json:"script_path,omitempty"`
	CreatedAt            string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_users",
		Description: "List Pileus users together with the accounts they can access",
	}, s.handleListUsers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_users_with_roles",
		Description: "List Pileus users with their role assignments",
	}, s.handleListUsersWithRoles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "onboard_aws_account",
		Description: "Onboard an AWS account into Pileus",
	}, s.handleOnboardAWS)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "onboard_aws_account_msp",
		Description: "Onboard an AWS account into Pileus on behalf of a reseller customer",
	}, s.handleOnboardMSP)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "onboarding_history",
		Description: "Show past onboarding attempts, newest first",
	}, s.handleHistory)
}

func (s *Server) handleListUsers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListUsersInput,
) (*mcp.CallToolResult, any, error) {
	raw, err := s.ports.Users.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(raw), nil, nil
}

func (s *Server) handleListUsersWithRoles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListUsersInput,
) (*mcp.CallToolResult, any, error) {
	raw, err := s.ports.Users.ListWithRoles(ctx)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(raw), nil, nil
}

func (s *Server) handleOnboardAWS(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OnboardAWSInput,
) (*mcp.CallToolResult, OnboardOutput, error) {
	result, err := s.ports.Onboarding.OnboardAWS(ctx, input.request())
	if err != nil {
		return nil, OnboardOutput{}, err
	}
	return nil, onboardOutput(result), nil
}

func (s *Server) handleOnboardMSP(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OnboardMSPInput,
) (*mcp.CallToolResult, OnboardOutput, error) {
	accountType, err := domain.ParseAccountType(input.AccountType)
	if err != nil {
		return nil, OnboardOutput{}, err
	}

	req := domain.MSPOnboarding{
		AWSOnboarding: domain.AWSOnboarding{
			AccountID:    input.AccountID,
			AccountName:  input.AccountName,
			BucketName:   input.BucketName,
			BucketRegion: input.BucketRegion,
		},
		AccountType:                accountType,
		ResellerCustomerID:         input.ResellerCustomerID,
		ResellerCustomerName:       input.ResellerCustomerName,
		CustomerSelfManaged:        input.CustomerSelfManaged,
		ResellerCustomerDomain:     input.ResellerCustomerDomain,
		AutoAssignLinkedAccounts:   input.AutoAssignLinkedAccounts,
		ExcludedLinkedAccountMatch: input.ExcludedLinkedAccountMatch,
	}

	result, err := s.ports.Onboarding.OnboardMSP(ctx, req)
	if err != nil {
		return nil, OnboardOutput{}, err
	}
	return nil, onboardOutput(result), nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.ports.Onboarding.History(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Records: make([]HistoryEntry, len(records)),
		Count:   len(records),
	}
	for i, r := range records {
		output.Records[i] = HistoryEntry{
			ID:                   r.ID,
			Mode:                 string(r.Mode),
			AccountID:            r.AccountID,
			AccountName:          r.AccountName,
			BucketName:           r.BucketName,
			BucketRegion:         r.BucketRegion,
			AccountType:          string(r.AccountType),
			ResellerCustomerName: r.ResellerCustomerName,
			Status:               r.Status,
			Error:                r.Error,
			ScriptPath:           r.ScriptPath,
			CreatedAt:            r.CreatedAt.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

func onboardOutput(result *domain.OnboardingResult) OnboardOutput {
	output := OnboardOutput{
		RecordID:   result.Record.ID,
		Status:     result.Record.Status,
		ScriptPath: result.ScriptPath,
		Warning:    result.Record.Error,
	}
	if len(result.JSON) > 0 {
		output.Response = result.JSON
	}
	return output
}

// jsonResult returns raw API JSON as text content.
func jsonResult(raw json.RawMessage) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}
