// Package form describes the onboarding questionnaires shared by the CLI
// prompts and the TUI form.
//
// A questionnaire is an ordered list of fields. Each answer is checked as it
// is entered, so a field may depend on answers given before it.
package form

import (
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// Kind controls how an answer is checked.
type Kind int

const (
	// Text must be non-empty unless the field is optional.
	Text Kind = iota
	// Choice must be one of Options.
	Choice
	// Bool must be "1" or "0".
	Bool
)

// Field keys.
const (
	KeyAccountID            = "account_id"
	KeyAccountName          = "account_name"
	KeyBucketName           = "bucket_name"
	KeyBucketRegion         = "bucket_region"
	KeyAccountType          = "account_type"
	KeyResellerCustomerID   = "reseller_customer_id"
	KeyResellerCustomerName = "reseller_customer_name"
	KeySelfManaged          = "self_managed"
	KeyCustomerDomain       = "customer_domain"
	KeyAutoAssign           = "auto_assign"
	KeyExcludeMatch         = "exclude_match"
)

// Answers maps field keys to checked answers.
type Answers map[string]string

// Bool returns true if the answer for key is "1".
func (a Answers) Bool(key string) bool {
	return a[key] == "1"
}

// Field is one question.
type Field struct {
	Key     string
	Kind    Kind
	Options []string

	// Optional fields accept an empty answer.
	Optional bool

	// OptionalUnless makes the field required when it returns true.
	OptionalUnless func(Answers) bool

	label func(Answers) string
}

// Label returns the prompt text for the field given earlier answers.
func (f Field) Label(a Answers) string {
	return f.label(a)
}

// IsOptional reports whether an empty answer is accepted given earlier answers.
func (f Field) IsOptional(a Answers) bool {
	if f.OptionalUnless != nil {
		return !f.OptionalUnless(a)
	}
	return f.Optional
}

// Check trims input and validates it against the field rules.
func (f Field) Check(input string, a Answers) (string, error) {
	value := strings.TrimSpace(input)

	switch f.Kind {
	case Bool:
		if value != "1" && value != "0" {
			return "", fmt.Errorf("enter 1 for true or 0 for false: %w", domain.ErrInvalidInput)
		}
		return value, nil
	case Choice:
		if !slices.Contains(f.Options, value) {
			return "", fmt.Errorf("enter one of %s: %w", strings.Join(f.Options, ", "), domain.ErrInvalidInput)
		}
		return value, nil
	}

	if value == "" && !f.IsOptional(a) {
		return "", fmt.Errorf("input cannot be empty: %w", domain.ErrInvalidInput)
	}
	return value, nil
}

func static(s string) func(Answers) string {
	return func(Answers) string { return s }
}

// AWSFields is the questionnaire for plain onboarding.
func AWSFields() []Field {
	return []Field{
		{Key: KeyAccountID, label: static("Enter Account ID: ")},
		{Key: KeyAccountName, label: static("Enter Account Name: ")},
	}
}

// MSPFields is the questionnaire for MSP onboarding.
// defaultRegion is shown as the bucket region default.
func MSPFields(defaultRegion string) []Field {
	if defaultRegion == "" {
		defaultRegion = domain.DefaultBucketRegion
	}

	return []Field{
		{Key: KeyAccountID, label: static("Enter Account ID: ")},
		{Key: KeyAccountName, label: static("Enter Account Name: ")},
		{
			Key:      KeyBucketName,
			Optional: true,
			label: func(a Answers) string {
				return fmt.Sprintf("Enter Bucket Name: (default: cur-%s) ", a[KeyAccountID])
			},
		},
		{
			Key:      KeyBucketRegion,
			Optional: true,
			label:    static(fmt.Sprintf("Enter Bucket Region: (default: %s) ", defaultRegion)),
		},
		{
			Key:     KeyAccountType,
			Kind:    Choice,
			Options: []string{"1", "0"},
			label:   static("Enter Account Type (dedicated (1) / shared (0)): "),
		},
		{Key: KeyResellerCustomerID, Optional: true, label: static("Enter Reseller Customer ID (optional): ")},
		{Key: KeyResellerCustomerName, label: static("Enter Reseller Customer Name: ")},
		{Key: KeySelfManaged, Kind: Bool, label: static("Is Customer Self Managed? (1=True / 0=False): ")},
		{
			Key:            KeyCustomerDomain,
			OptionalUnless: func(a Answers) bool { return a.Bool(KeySelfManaged) },
			label:          static("Enter Reseller Customer Domain (required for self-managed customer): "),
		},
		{Key: KeyAutoAssign, Kind: Bool, label: static("Auto Assign Linked Accounts? (1=True / 0=False): ")},
		{Key: KeyExcludeMatch, Optional: true, label: static("Excluded Linked Account Match (optional): ")},
	}
}

// AWSRequest builds a plain onboarding request from answers.
func AWSRequest(a Answers) domain.AWSOnboarding {
	return domain.AWSOnboarding{
		AccountID:    a[KeyAccountID],
		AccountName:  a[KeyAccountName],
		BucketName:   a[KeyBucketName],
		BucketRegion: a[KeyBucketRegion],
	}
}

// MSPRequest builds an MSP onboarding request from answers.
func MSPRequest(a Answers) (domain.MSPOnboarding, error) {
	accountType, err := domain.ParseAccountType(a[KeyAccountType])
	if err != nil {
		return domain.MSPOnboarding{}, err
	}

	return domain.MSPOnboarding{
		AWSOnboarding:              AWSRequest(a),
		AccountType:                accountType,
		ResellerCustomerID:         a[KeyResellerCustomerID],
		ResellerCustomerName:       a[KeyResellerCustomerName],
		CustomerSelfManaged:        a.Bool(KeySelfManaged),
		ResellerCustomerDomain:     a[KeyCustomerDomain],
		AutoAssignLinkedAccounts:   a.Bool(KeyAutoAssign),
		ExcludedLinkedAccountMatch: a[KeyExcludeMatch],
	}, nil
}
