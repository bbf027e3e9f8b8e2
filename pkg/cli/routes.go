package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/router"
)

var routesFormat string

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Inspect the application route table",
	Long: `Inspect the routes the app registers.

Routes are matched in registration order and the first match wins, so the
order of the table is part of its behavior. Use "routes lint" to catch
patterns that can never match.`,
}

var routesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List routes in match order",
	Args:  cobra.NoArgs,
	RunE:  runRoutesList,
}

var routesLintCmd = &cobra.Command{
	Use:   "lint [pattern...]",
	Short: "Check the route table for unreachable or order-dependent patterns",
	Long: `Check route patterns in registration order.

Without arguments the app's own table is checked. Pass patterns to check an
arbitrary table, in the order they would be registered.

Exit codes:
  0 - no errors (warnings may be printed)
  1 - at least one pattern can never match or is malformed`,
	RunE: runRoutesLint,
}

var routesMatchCmd = &cobra.Command{
	Use:   "match <path>",
	Short: "Show which route a path dispatches to",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutesMatch,
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.AddCommand(routesListCmd, routesLintCmd, routesMatchCmd)

	routesListCmd.Flags().StringVarP(&routesFormat, "format", "f", "table", "output format: table, yaml, or json")
}

type routeInfo struct {
	Index   int      `yaml:"index" json:"index"`
	Pattern string   `yaml:"pattern" json:"pattern"`
	Page    string   `yaml:"page" json:"page"`
	Title   string   `yaml:"title" json:"title"`
	Params  []string `yaml:"params,omitempty" json:"params,omitempty"`
}

func routeInfos() []routeInfo {
	r := router.New(router.NewMemoryLocation(""))
	pages := app.Pages()
	for _, p := range pages {
		r.Register(p.Pattern, nil)
	}

	infos := make([]routeInfo, len(pages))
	for i, route := range r.Routes() {
		infos[i] = routeInfo{
			Index:   i + 1,
			Pattern: route.Pattern,
			Page:    pages[i].Name,
			Title:   pages[i].Title,
			Params:  route.ParamNames,
		}
	}
	return infos
}

func runRoutesList(cmd *cobra.Command, args []string) error {
	return writeRoutes(cmd.OutOrStdout(), routeInfos(), routesFormat)
}

func writeRoutes(w io.Writer, infos []routeInfo, format string) error {
	switch format {
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tPATTERN\tPAGE\tPARAMS")
		for _, info := range infos {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", info.Index, info.Pattern, info.Page, strings.Join(info.Params, ","))
		}
		return tw.Flush()
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (must be table, yaml, or json)", format)
	}
}

func runRoutesLint(cmd *cobra.Command, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = app.Patterns()
	}

	findings := router.Lint(patterns)
	out := cmd.OutOrStdout()
	for _, f := range findings {
		fmt.Fprintln(out, f.String())
	}

	errors := 0
	for _, f := range findings {
		if f.Severity == router.SeverityError {
			errors++
		}
	}
	if errors > 0 {
		return fmt.Errorf("route table has %d error(s)", errors)
	}

	fmt.Fprintf(out, "%d routes checked, %d warning(s)\n", len(patterns), len(findings))
	return nil
}

func runRoutesMatch(cmd *cobra.Command, args []string) error {
	r := router.New(router.NewMemoryLocation(""))
	pages := make(map[string]app.Page)
	for _, p := range app.Pages() {
		r.Register(p.Pattern, nil)
		pages[p.Pattern] = p
	}

	out := cmd.OutOrStdout()
	route, params, ok := r.Match(args[0])
	if !ok {
		fmt.Fprintf(out, "no route matches %s\n", args[0])
		return nil
	}

	fmt.Fprintf(out, "pattern: %s\n", route.Pattern)
	fmt.Fprintf(out, "page:    %s\n", pages[route.Pattern].Name)
	for _, name := range sortedParamNames(params) {
		fmt.Fprintf(out, "  %s = %s\n", name, params[name])
	}
	return nil
}
