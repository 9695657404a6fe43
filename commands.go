package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"costsheetgen/services"
)

// registerCostSheetCommands adds the file-mode subcommands to the app's root
// command so the generator runs without the server.
func registerCostSheetCommands(app *pocketbase.PocketBase) {
	cmd := &cobra.Command{
		Use:   "costsheet",
		Short: "Work with cost-sheet workbooks from the command line",
	}
	cmd.AddCommand(
		newGenerateCommand(),
		newReadCommand(),
		newContextCommand(),
		newReviseCommand(),
	)
	app.RootCmd.AddCommand(cmd)
}

func newGenerateCommand() *cobra.Command {
	var input, output, templateDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a cost-sheet workbook from a project JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read project file: %w", err)
			}
			var project services.Project
			if err := json.Unmarshal(data, &project); err != nil {
				return fmt.Errorf("parse project JSON: %w", err)
			}

			xlsxBytes, err := services.WriteCostSheet(&project, cliTemplateSource(templateDir))
			if err != nil {
				return fmt.Errorf("generate cost sheet: %w", err)
			}

			if output == "" {
				output = services.CostSheetFilename(project.ProjectNumber, project.Date)
			}
			if err := os.WriteFile(output, xlsxBytes, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}

			color.Green("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "project JSON file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook path (default derived from the project number)")
	cmd.Flags().StringVar(&templateDir, "template", "", "directory of template workbooks (default $HALTON_TEMPLATE_DIR)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func newReadCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read a cost-sheet workbook back into project JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			result, err := services.ReadCostSheet(f)
			if err != nil {
				return fmt.Errorf("read cost sheet: %w", err)
			}

			printReadSummary(result)

			if output != "" {
				data, err := json.MarshalIndent(result.Project, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal project JSON: %w", err)
				}
				if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write project JSON: %w", err)
				}
				color.Green("Wrote %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "cost-sheet workbook (.xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the project tree to this JSON file")
	cmd.MarkFlagRequired("input")
	return cmd
}

func newContextCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Build the Word quotation context from a cost-sheet workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			result, err := services.ReadCostSheet(f)
			if err != nil {
				return fmt.Errorf("read cost sheet: %w", err)
			}

			context := services.BuildWordContext(result.Project)
			data, err := json.MarshalIndent(context, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal context JSON: %w", err)
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write context JSON: %w", err)
			}
			color.Green("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "cost-sheet workbook (.xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the context to this JSON file (default stdout)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func newReviseCommand() *cobra.Command {
	var input, output string
	var updateDate bool

	cmd := &cobra.Command{
		Use:   "revise",
		Short: "Bump the revision letter of a cost-sheet workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			result, err := services.ReviseCostSheet(f, updateDate)
			if err != nil {
				return fmt.Errorf("revise cost sheet: %w", err)
			}

			if output == "" {
				output = result.Filename
			}
			if err := os.WriteFile(output, result.Bytes, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}

			if result.OldRevision == "" {
				color.Green("Initial issue -> revision %s, wrote %s", result.NewRevision, output)
			} else {
				color.Green("Revision %s -> %s, wrote %s", result.OldRevision, result.NewRevision, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "cost-sheet workbook (.xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook path (default derived from the workbook)")
	cmd.Flags().BoolVar(&updateDate, "update-date", false, "refresh the date cells to today")
	cmd.MarkFlagRequired("input")
	return cmd
}

// cliTemplateSource resolves the template source for a generation run: the
// --template flag wins, then $HALTON_TEMPLATE_DIR, then the built-in master.
func cliTemplateSource(dir string) services.TemplateSource {
	if dir == "" {
		dir = os.Getenv("HALTON_TEMPLATE_DIR")
	}
	if dir != "" {
		return services.DirTemplateSource{Dir: dir}
	}
	return services.BuiltinTemplate{}
}

// printReadSummary prints the reconciliation verdict and any read issues.
func printReadSummary(result *services.ReadResult) {
	totals := result.Reconciliation.Totals
	fmt.Printf("Project %s (%s)\n", result.Project.ProjectNumber, result.Project.ProjectName)
	fmt.Printf("  Total excluding flat pack: %s\n", services.FormatGBP(totals.TotalExcludingFlatPack))
	fmt.Printf("  Total including flat pack: %s\n", services.FormatGBP(totals.TotalIncludingFlatPack))

	if result.Reconciliation.OK() {
		color.Green("Pricing reconciles with the workbook's JOB TOTAL (tolerance %s)",
			services.FormatGBP(result.Reconciliation.Tolerance))
	} else {
		color.Red("Pricing discrepancies:")
		for _, d := range result.Reconciliation.Discrepancies {
			color.Red("  - %s", d)
		}
	}

	if len(result.Issues) == 0 {
		color.Green("No read issues")
		return
	}
	color.Yellow("%d read issue(s):", len(result.Issues))
	for _, issue := range result.Issues {
		color.Yellow("  - %s", issue.String())
	}
}
