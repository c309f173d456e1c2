package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/form"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Onboard AWS accounts",
	Long: `Onboard an AWS account to Pileus, either directly or on behalf of an
MSP reseller customer.

When Pileus answers with a setup script it is saved to
<output_dir>/<account-name>_<account-id>/setup.sh. Run it in the AWS account to
finish the onboarding.

Values not given as flags are prompted when running in a terminal.`,
}

var onboardAWSCmd = &cobra.Command{
	Use:   "aws [account-id]",
	Short: "Onboard an AWS account",
	Long: `Onboard an AWS account.

Examples:
  pileus onboard aws
  pileus onboard aws 123456789012 --name production
  pileus onboard aws 123456789012 --name production --bucket my-cur --region eu-west-1 --open`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationCredentials: "true"},
	RunE:        runOnboardAWS,
}

var onboardMSPCmd = &cobra.Command{
	Use:   "msp [account-id]",
	Short: "Onboard an AWS account for an MSP customer",
	Long: `Onboard an AWS account on behalf of a reseller customer.

The account type is dedicated (1) or shared (0). A self-managed customer needs
a domain.

Examples:
  pileus onboard msp
  pileus onboard msp 123456789012 --name production --type shared --customer-name "Acme Corp"
  pileus onboard msp 123456789012 --name production --type dedicated \
    --customer-name "Acme Corp" --self-managed --domain acme.example --auto-assign`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationCredentials: "true"},
	RunE:        runOnboardMSP,
}

// flagAnswers maps flag names to questionnaire keys.
var flagAnswers = map[string]string{
	"name":          form.KeyAccountName,
	"bucket":        form.KeyBucketName,
	"region":        form.KeyBucketRegion,
	"customer-id":   form.KeyResellerCustomerID,
	"customer-name": form.KeyResellerCustomerName,
	"domain":        form.KeyCustomerDomain,
	"exclude-match": form.KeyExcludeMatch,
	"self-managed":  form.KeySelfManaged,
	"auto-assign":   form.KeyAutoAssign,
}

func init() {
	for _, c := range []*cobra.Command{onboardAWSCmd, onboardMSPCmd} {
		c.Flags().String("name", "", "account name")
		c.Flags().String("bucket", "", "CUR bucket name (default cur-<account-id>)")
		c.Flags().String("region", "", "CUR bucket region (default onboarding.default_region)")
		c.Flags().Bool("open", false, "open the setup script folder when done")
	}

	f := onboardMSPCmd.Flags()
	f.String("type", "", "account type: dedicated (1) or shared (0)")
	f.String("customer-id", "", "reseller customer ID")
	f.String("customer-name", "", "reseller customer name")
	f.Bool("self-managed", false, "the customer manages the account")
	f.String("domain", "", "reseller customer domain (required when self-managed)")
	f.Bool("auto-assign", false, "auto assign linked accounts")
	f.String("exclude-match", "", "excluded linked account match")

	onboardCmd.AddCommand(onboardAWSCmd)
	onboardCmd.AddCommand(onboardMSPCmd)
	rootCmd.AddCommand(onboardCmd)
}

func runOnboardAWS(cmd *cobra.Command, args []string) error {
	if onboardingService == nil {
		return errors.New("onboarding service not configured")
	}

	answers, err := flagAnswersOf(cmd, args)
	if err != nil {
		return err
	}

	p := newPrompter(cmd)
	if err := collect(p, form.AWSFields(), answers); err != nil {
		return err
	}

	result, err := onboardingService.OnboardAWS(cmd.Context(), form.AWSRequest(answers))
	return reportOnboarding(cmd, p, result, err)
}

func runOnboardMSP(cmd *cobra.Command, args []string) error {
	if onboardingService == nil {
		return errors.New("onboarding service not configured")
	}

	answers, err := flagAnswersOf(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("type") {
		v, _ := cmd.Flags().GetString("type") //nolint:errcheck // flag is registered above
		accountType, err := domain.ParseAccountType(v)
		if err != nil {
			return err
		}
		answers[form.KeyAccountType] = "0"
		if accountType == domain.AccountTypeDedicated {
			answers[form.KeyAccountType] = "1"
		}
	}

	defaultRegion := ""
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			defaultRegion = s.Onboarding.DefaultRegion
		}
	}

	p := newPrompter(cmd)
	if err := collect(p, form.MSPFields(defaultRegion), answers); err != nil {
		return err
	}

	req, err := form.MSPRequest(answers)
	if err != nil {
		return err
	}

	result, err := onboardingService.OnboardMSP(cmd.Context(), req)
	return reportOnboarding(cmd, p, result, err)
}

// flagAnswersOf collects the answers given on the command line.
// Booleans count only when the flag was set explicitly.
func flagAnswersOf(cmd *cobra.Command, args []string) (form.Answers, error) {
	answers := form.Answers{}
	if len(args) > 0 {
		answers[form.KeyAccountID] = args[0]
	}

	for name, key := range flagAnswers {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if flag.Value.Type() == "bool" {
			on, err := cmd.Flags().GetBool(name)
			if err != nil {
				return nil, err
			}
			answers[key] = "0"
			if on {
				answers[key] = "1"
			}
			continue
		}
		answers[key] = flag.Value.String()
	}
	return answers, nil
}

func reportOnboarding(cmd *cobra.Command, p *prompter, result *domain.OnboardingResult, err error) error {
	if err != nil {
		return fmt.Errorf("onboarding failed: %w", err)
	}

	switch {
	case result.ScriptPath != "":
		cmd.Printf("Script saved to %s\n", result.ScriptPath)
	case result.Script != "":
		cmd.Println("Setup script (not saved):")
		fmt.Fprintln(cmd.OutOrStdout(), result.Script)
	case len(result.JSON) > 0:
		if err := printJSON(cmd.OutOrStdout(), result.JSON); err != nil {
			return err
		}
	}
	if result.Record.Error != "" {
		cmd.Printf("Warning: %s\n", result.Record.Error)
	}
	if result.Record.ID != "" {
		cmd.Printf("Recorded as %s\n", result.Record.ID)
	}

	if result.ScriptPath == "" {
		return nil
	}

	open, _ := cmd.Flags().GetBool("open") //nolint:errcheck // flag is registered above
	if !open && stdinIsTerminal() {
		open = p.confirm("Do you want to open the folder?")
	}
	if !open {
		return nil
	}

	cmd.Printf("Opening folder: %s\n", filepath.Dir(result.ScriptPath))
	if err := onboardingService.OpenFolder(result.ScriptPath); err != nil {
		return fmt.Errorf("failed to open folder: %w", err)
	}
	return nil
}
