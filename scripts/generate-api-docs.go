// Package main generates Markdown reference docs from the registered tool definitions
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/sammcj/xamarin-devtools/internal/registry"
	"github.com/sammcj/xamarin-devtools/internal/tools"

	// Import all tools to register them
	_ "github.com/sammcj/xamarin-devtools/internal/imports"
)

type ToolInfo struct {
	Name               string
	Description        string
	Parameters         []ParameterInfo
	RequiresEnablement bool
	Help               *tools.ExtendedHelp
}

type ParameterInfo struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

const docTemplate = `# Tool reference

Generated from the registered tool definitions. Do not edit by hand.
{{range .}}
## {{.Name}}

{{.Description}}
{{if .RequiresEnablement}}
Passes credentials on the command line. Served over MCP only when listed in ENABLE_ADDITIONAL_TOOLS.
{{end}}
{{- if .Parameters}}
| Parameter | Type | Required | Description |
|-----------|------|----------|-------------|
{{- range .Parameters}}
| ` + "`{{.Name}}`" + ` | {{.Type}} | {{if .Required}}yes{{else}}no{{end}} | {{.Description}} |
{{- end}}
{{end}}
{{- with .Help}}{{if .WhenToUse}}
**When to use:** {{.WhenToUse}}
{{end}}{{end}}
{{- end}}
`

func main() {
	outputDir := flag.String("output", "docs", "Output directory")
	flag.Parse()

	registry.Init(nil)
	infos := collectTools()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(*outputDir, "tools.md")
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	tmpl := template.Must(template.New("tools").Parse(docTemplate))
	if err := tmpl.Execute(f, infos); err != nil {
		fmt.Fprintf(os.Stderr, "failed to render docs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d tools to %s\n", len(infos), path)
}

func collectTools() []ToolInfo {
	all := registry.GetTools()
	infos := make([]ToolInfo, 0, len(all))
	for name, tool := range all {
		def := tool.Definition()
		info := ToolInfo{
			Name:               name,
			Description:        def.Description,
			RequiresEnablement: registry.RequiresEnablement(name),
		}

		required := make(map[string]bool, len(def.InputSchema.Required))
		for _, r := range def.InputSchema.Required {
			required[r] = true
		}
		for pName, raw := range def.InputSchema.Properties {
			prop, _ := raw.(map[string]any)
			pType, _ := prop["type"].(string)
			pDesc, _ := prop["description"].(string)
			info.Parameters = append(info.Parameters, ParameterInfo{
				Name:        pName,
				Type:        pType,
				Required:    required[pName],
				Description: strings.ReplaceAll(pDesc, "|", "\\|"),
			})
		}
		sort.Slice(info.Parameters, func(i, j int) bool {
			if info.Parameters[i].Required != info.Parameters[j].Required {
				return info.Parameters[i].Required
			}
			return info.Parameters[i].Name < info.Parameters[j].Name
		})

		if provider, ok := tool.(tools.ExtendedHelpProvider); ok {
			info.Help = provider.ProvideExtendedInfo()
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
