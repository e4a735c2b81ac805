// Package cli runs the registered alias tools straight from the command
// line, without the MCP server. Tools are invoked in-process via the
// registry against a local host.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sammcj/xamarin-devtools/internal/config"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"
)

// OutputFormat controls how tool results are rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// heading is plain text unless stdout is a terminal.
var heading = color.New(color.Bold).SprintFunc()

// Runner executes CLI commands against the tool registry.
type Runner struct {
	host   *host.Host
	cfg    *config.Config
	output OutputFormat
	out    io.Writer
}

// NewRunner creates a Runner that executes tools on h with cfg and writes
// results to stdout in the given format.
func NewRunner(h *host.Host, cfg *config.Config, output OutputFormat) *Runner {
	return &Runner{host: h, cfg: cfg, output: output, out: os.Stdout}
}

// WithOutput redirects rendered output to w.
func (r *Runner) WithOutput(w io.Writer) *Runner {
	r.out = w
	return r
}

// ListTools prints all enabled tools with their descriptions.
func (r *Runner) ListTools() error {
	type entry struct {
		name string
		desc string
	}
	var entries []entry
	for _, name := range registry.GetEnabledToolNames() {
		t, ok := registry.GetTool(name)
		if !ok {
			continue
		}
		entries = append(entries, entry{name: name, desc: firstLine(t.Definition().Description)})
	}

	if r.output == OutputJSON {
		type jsonEntry struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		out := make([]jsonEntry, len(entries))
		for i, e := range entries {
			out[i] = jsonEntry{Name: e.name, Description: e.desc}
		}
		return writeJSON(r.out, out)
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.name, e.desc)
	}
	return w.Flush()
}

// HelpTool prints the schema and usage information for a single tool.
func (r *Runner) HelpTool(name string) error {
	tool, ok := registry.GetTool(name)
	if !ok {
		return fmt.Errorf("unknown tool: %s", name)
	}
	def := tool.Definition()

	if r.output == OutputJSON {
		return writeJSON(r.out, def)
	}

	fmt.Fprintf(r.out, "Tool: %s\n\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(r.out, "%s\n\n", def.Description)
	}

	props := def.InputSchema.Properties
	if len(props) == 0 {
		fmt.Fprintln(r.out, "No parameters.")
		return nil
	}

	fmt.Fprintln(r.out, heading("Parameters:"))
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, p := range slices.Sorted(maps.Keys(props)) {
		prop, _ := props[p].(map[string]any)
		typ, _ := prop["type"].(string)
		desc, _ := prop["description"].(string)
		if slices.Contains(def.InputSchema.Required, p) {
			desc += " (required)"
		}
		fmt.Fprintf(w, "  --%s\t%s\t%s\n", flagName(p), typ, firstLine(desc))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if provider, ok := tool.(tools.ExtendedHelpProvider); ok {
		r.writeExtendedHelp(provider.ProvideExtendedInfo())
	}
	return nil
}

func (r *Runner) writeExtendedHelp(help *tools.ExtendedHelp) {
	if help == nil {
		return
	}
	if help.WhenToUse != "" {
		fmt.Fprintf(r.out, "\n%s\n  %s\n", heading("When to use:"), help.WhenToUse)
	}
	if len(help.Examples) > 0 {
		fmt.Fprintf(r.out, "\n%s\n", heading("Examples:"))
		for _, ex := range help.Examples {
			args, _ := json.Marshal(ex.Arguments)
			fmt.Fprintf(r.out, "  %s\n    %s\n", ex.Description, args)
			if ex.ExpectedResult != "" {
				fmt.Fprintf(r.out, "    => %s\n", ex.ExpectedResult)
			}
		}
	}
	if len(help.Troubleshooting) > 0 {
		fmt.Fprintf(r.out, "\n%s\n", heading("Troubleshooting:"))
		for _, tip := range help.Troubleshooting {
			fmt.Fprintf(r.out, "  %s\n    %s\n", tip.Problem, tip.Solution)
		}
	}
}

// RunTool executes a tool by name. args are --name=value flags, bare
// --name switches for boolean parameters, or JSON objects; flags win over
// JSON keys of the same name.
func (r *Runner) RunTool(ctx context.Context, name string, args []string) error {
	tool, ok := registry.GetTool(name)
	if !ok {
		return fmt.Errorf("unknown tool: %s (run 'xamarin-devtools list' to see available tools)", name)
	}
	def := tool.Definition()

	params, err := parseArgs(args, def)
	if err != nil {
		return fmt.Errorf("argument error: %w", err)
	}

	result, err := tool.Execute(ctx, r.host, r.cfg, params)
	if err != nil {
		tools.GetGlobalErrorLogger().LogToolError(def.Name, params, err, "cli")
		return fmt.Errorf("tool error: %w", err)
	}
	if result == nil {
		return nil
	}

	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok && r.output == OutputText {
			fmt.Fprintln(r.out, text.Text)
			continue
		}
		if err := writeJSON(r.out, content); err != nil {
			return err
		}
	}
	if result.IsError {
		return fmt.Errorf("tool returned an error")
	}
	return nil
}

func parseArgs(args []string, def mcp.Tool) (map[string]any, error) {
	types := make(map[string]string, len(def.InputSchema.Properties))
	for p, prop := range def.InputSchema.Properties {
		if m, ok := prop.(map[string]any); ok {
			types[p], _ = m["type"].(string)
		}
	}

	flags := make(map[string]any)
	merged := make(map[string]any)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "{"):
			if err := json.Unmarshal([]byte(arg), &merged); err != nil {
				return nil, fmt.Errorf("invalid JSON argument: %w", err)
			}
		case strings.HasPrefix(arg, "--"):
			flag, raw, hasValue := strings.Cut(arg[2:], "=")
			param := strings.ReplaceAll(flag, "-", "_")
			if !hasValue && types[param] == "boolean" {
				flags[param] = true
				continue
			}
			if !hasValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("flag --%s requires a value", flag)
				}
				i++
				raw = args[i]
			}
			v, err := coerce(raw, types[param])
			if err != nil {
				return nil, fmt.Errorf("flag --%s: %w", flag, err)
			}
			flags[param] = v
		default:
			return nil, fmt.Errorf("unexpected argument: %s (use --name=value flags or a JSON object)", arg)
		}
	}

	maps.Copy(merged, flags)
	return merged, nil
}

// coerce converts a flag value to the JSON type its parameter declares.
// Arrays fall through as strings unless given as JSON; the tools split
// comma-separated lists themselves.
func coerce(raw, typ string) (any, error) {
	switch typ {
	case "number", "integer":
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return f, nil
	case "boolean":
		return strconv.ParseBool(raw)
	case "array", "object":
		if !strings.HasPrefix(raw, "[") && !strings.HasPrefix(raw, "{") {
			return raw, nil
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return raw, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func flagName(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}
