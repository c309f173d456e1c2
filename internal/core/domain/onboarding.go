package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultBucketRegion is used when neither the request nor settings name a region.
const DefaultBucketRegion = "us-east-1"

// AccountType is the MSP account type.
type AccountType string

// Available account types.
const (
	AccountTypeDedicated AccountType = "dedicated"
	AccountTypeShared    AccountType = "shared"
)

// IsValid returns true if the account type is recognised.
func (t AccountType) IsValid() bool {
	return t == AccountTypeDedicated || t == AccountTypeShared
}

// ParseAccountType accepts "dedicated", "shared", or the menu shorthands "1" and "0".
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", string(AccountTypeDedicated):
		return AccountTypeDedicated, nil
	case "0", string(AccountTypeShared):
		return AccountTypeShared, nil
	default:
		return "", fmt.Errorf("account type %q: %w", s, ErrInvalidInput)
	}
}

// OnboardingMode distinguishes plain and MSP onboarding.
type OnboardingMode string

// Available onboarding modes.
const (
	OnboardingModeAWS OnboardingMode = "aws"
	OnboardingModeMSP OnboardingMode = "msp"
)

// AWSOnboarding is a request to onboard an AWS account.
type AWSOnboarding struct {
	AccountID    string
	AccountName  string
	BucketName   string
	BucketRegion string
}

// Validate checks the required fields.
func (o AWSOnboarding) Validate() error {
	if strings.TrimSpace(o.AccountID) == "" {
		return fmt.Errorf("account id is required: %w", ErrInvalidInput)
	}
	if strings.ContainsAny(o.AccountID, `/\`) {
		return fmt.Errorf("account id %q contains a path separator: %w", o.AccountID, ErrInvalidInput)
	}
	if strings.TrimSpace(o.AccountName) == "" {
		return fmt.Errorf("account name is required: %w", ErrInvalidInput)
	}
	return nil
}

// Bucket returns the bucket name, defaulting to "cur-<account id>".
func (o AWSOnboarding) Bucket() string {
	if o.BucketName != "" {
		return o.BucketName
	}
	return "cur-" + o.AccountID
}

// Region returns the bucket region, falling back to defaultRegion and then us-east-1.
func (o AWSOnboarding) Region(defaultRegion string) string {
	switch {
	case o.BucketRegion != "":
		return o.BucketRegion
	case defaultRegion != "":
		return defaultRegion
	default:
		return DefaultBucketRegion
	}
}

// Payload builds the request body.
func (o AWSOnboarding) Payload(defaultRegion string) map[string]any {
	return map[string]any{
		"accountName":  o.AccountName,
		"bucketName":   o.Bucket(),
		"bucketRegion": o.Region(defaultRegion),
	}
}

// MSPOnboarding is a request to onboard an AWS account on behalf of a reseller customer.
type MSPOnboarding struct {
	AWSOnboarding

	AccountType                AccountType
	ResellerCustomerID         string
	ResellerCustomerName       string
	CustomerSelfManaged        bool
	ResellerCustomerDomain     string
	AutoAssignLinkedAccounts   bool
	ExcludedLinkedAccountMatch string
}

// Validate checks the required fields.
func (o MSPOnboarding) Validate() error {
	if err := o.AWSOnboarding.Validate(); err != nil {
		return err
	}
	if !o.AccountType.IsValid() {
		return fmt.Errorf("account type %q: %w", o.AccountType, ErrInvalidInput)
	}
	if strings.TrimSpace(o.ResellerCustomerName) == "" {
		return fmt.Errorf("reseller customer name is required: %w", ErrInvalidInput)
	}
	if o.CustomerSelfManaged && strings.TrimSpace(o.ResellerCustomerDomain) == "" {
		return fmt.Errorf("reseller customer domain is required for a self-managed customer: %w", ErrInvalidInput)
	}
	return nil
}

// Payload builds the request body. Empty optional strings are omitted.
func (o MSPOnboarding) Payload(defaultRegion string) map[string]any {
	payload := o.AWSOnboarding.Payload(defaultRegion)
	payload["accountType"] = string(o.AccountType)
	payload["isCustomerSelfManaged"] = boolFlag(o.CustomerSelfManaged)
	payload["autoAssignLinkedAccounts"] = boolFlag(o.AutoAssignLinkedAccounts)

	optional := map[string]string{
		"resellerCustomerId":         o.ResellerCustomerID,
		"resellerCustomerName":       o.ResellerCustomerName,
		"resellerCustomerDomain":     o.ResellerCustomerDomain,
		"excludedLinkedAccountMatch": o.ExcludedLinkedAccountMatch,
	}
	for k, v := range optional {
		if v != "" {
			payload[k] = v
		}
	}
	return payload
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// OnboardingResponse is the API answer to an onboarding request.
// Exactly one of JSON or Script is set.
type OnboardingResponse struct {
	JSON   json.RawMessage
	Script string
}

// IsScript returns true if the API returned a raw setup script.
func (r *OnboardingResponse) IsScript() bool {
	return r != nil && r.Script != ""
}

// OnboardingResult is the outcome of an onboarding operation.
type OnboardingResult struct {
	Record     OnboardingRecord
	JSON       json.RawMessage
	Script     string
	ScriptPath string
}

// ScriptFolderName returns the folder a setup script is saved in ("<name>_<id>").
func ScriptFolderName(accountName, accountID string) string {
	r := strings.NewReplacer("/", "_", `\`, "_")
	return r.Replace(accountName) + "_" + r.Replace(accountID)
}

// Onboarding attempt outcomes.
const (
	OnboardingSucceeded = "succeeded"
	OnboardingFailed    = "failed"
)

// OnboardingRecord is a history entry for one onboarding attempt.
type OnboardingRecord struct {
	ID                   string         `json:"id"`
	Mode                 OnboardingMode `json:"mode"`
	AccountID            string         `json:"account_id"`
	AccountName          string         `json:"account_name"`
	BucketName           string         `json:"bucket_name"`
	BucketRegion         string         `json:"bucket_region"`
	AccountType          AccountType    `json:"account_type,omitempty"`
	ResellerCustomerName string         `json:"reseller_customer_name,omitempty"`
	Status               string         `json:"status"`
	Error                string         `json:"error,omitempty"`
	ScriptPath           string         `json:"script_path,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

// Succeeded returns true if the attempt succeeded.
func (r OnboardingRecord) Succeeded() bool {
	return r.Status == OnboardingSucceeded
}
