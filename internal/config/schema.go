package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/stoewer/go-strcase"
)

//go:embed config.go
var configSource embed.FS

// NewSchema builds the JSON schema for analysis configuration files. Doc
// comments on the exported configuration types become schema descriptions so
// editors can surface them next to each key.
func NewSchema() ([]byte, error) {
	comments, err := extractGoComments(reflect.TypeOf(Config{}).PkgPath())
	if err != nil {
		return nil, err
	}

	reflector := &jsonschema.Reflector{
		KeyNamer: strcase.SnakeCase,
		Namer: func(t reflect.Type) string {
			return strcase.SnakeCase(t.Name())
		},
		ExpandedStruct: true,
		CommentMap:     comments,
	}

	schema := reflector.Reflect(&Config{})
	return json.MarshalIndent(schema, "", "  ")
}

// extractGoComments parses the embedded source of this package and collects
// doc comments for exported types and their fields, keyed the way the
// reflector expects.
func extractGoComments(pkg string) (map[string]string, error) {
	source, err := configSource.ReadFile("config.go")
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "config.go", source, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	comments := make(map[string]string)
	declDoc := ""
	typ := ""
	ast.Inspect(f, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.TypeSpec:
			typ = x.Name.String()
			if !ast.IsExported(typ) {
				typ = ""
				break
			}
			txt := x.Doc.Text()
			if txt == "" && declDoc != "" {
				txt = declDoc
				declDoc = ""
			}
			comments[fmt.Sprintf("%s.%s", pkg, typ)] = strings.TrimSpace(txt)
		case *ast.Field:
			txt := x.Doc.Text()
			if txt == "" {
				txt = x.Comment.Text()
			}
			if typ == "" || txt == "" {
				break
			}
			for _, name := range x.Names {
				if ast.IsExported(name.String()) {
					comments[fmt.Sprintf("%s.%s.%s", pkg, typ, name)] = strings.TrimSpace(txt)
				}
			}
		case *ast.GenDecl:
			// the type spec inherits the declaration doc when it has none of its own
			declDoc = x.Doc.Text()
		}
		return true
	})

	return comments, nil
}
