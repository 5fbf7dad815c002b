package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/cpplive/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Load reads settings from an HCL file. Attributes missing from the file keep
// the values of Defaults(defaultCompiler).
func Load(path, defaultCompiler string) (*Settings, error) {
	s, err := decode(path, Defaults(defaultCompiler))
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	return s, nil
}

// decode overlays the attributes of the file at path onto s.
func decode(path string, s *Settings) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("settings file %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, s); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}
	return s, nil
}

// LoadOrCreate loads path, or writes and returns the defaults when the file
// does not exist yet. detect is called only when the file is missing or has
// no compiler attribute.
func LoadOrCreate(ctx context.Context, path string, detect func(context.Context) string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s := Defaults(detect(ctx))
		logger.Debug("Settings file not found, writing defaults.", "path", path, "compiler", s.Compiler)
		if err := Save(path, s); err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := decode(path, Defaults(""))
	if err != nil {
		return nil, err
	}
	if s.Compiler == "" {
		s.Compiler = detect(ctx)
		logger.Debug("Settings file has no compiler, using detected one.", "compiler", s.Compiler)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	logger.Debug("Settings loaded.", "path", path)
	return s, nil
}

// Save writes s to path as HCL, replacing the file.
func Save(path string, s *Settings) error {
	if err := os.WriteFile(path, Encode(s), 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}

// Encode renders s as an HCL document with one attribute per key.
func Encode(s *Settings) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	flags := make([]cty.Value, 0, len(s.CompilerFlags))
	for _, fl := range s.CompilerFlags {
		flags = append(flags, cty.StringVal(fl))
	}
	flagsVal := cty.ListValEmpty(cty.String)
	if len(flags) > 0 {
		flagsVal = cty.ListVal(flags)
	}

	body.SetAttributeValue(KeyCompiler, cty.StringVal(s.Compiler))
	body.SetAttributeValue(KeyCompilerFlags, flagsVal)
	body.SetAttributeValue(KeyTheme, cty.StringVal(s.Theme))
	body.SetAttributeValue(KeyLineNumbers, cty.BoolVal(s.LineNumbers))
	body.SetAttributeValue(KeyWordWrap, cty.BoolVal(s.WordWrap))
	body.SetAttributeValue(KeyBackgroundColor, cty.StringVal(s.BackgroundColor))
	body.SetAttributeValue(KeyCompileTimeout, cty.StringVal(s.CompileTimeout))
	body.SetAttributeValue(KeyRunTimeout, cty.StringVal(s.RunTimeout))
	body.SetAttributeValue(KeyBroadcastURL, cty.StringVal(s.BroadcastURL))

	return f.Bytes()
}
