package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/dtypes/internal/backends"
	"github.com/born-ml/dtypes/internal/dtype"
	"github.com/born-ml/dtypes/internal/envconfig"
	"github.com/born-ml/dtypes/internal/resolver"
)

// BackendsHandler lists every known backend with its valid and invalid dtypes.
func BackendsHandler(cmd *cobra.Command, _ []string) error {
	var data [][]string
	for _, name := range backends.Names {
		p, err := backends.New(name)
		if err != nil {
			return err
		}
		data = append(data, []string{name, joinDtypes(p.ValidDtypes()), joinDtypes(p.InvalidDtypes())})
	}
	renderTable(cmd.OutOrStdout(), []string{"NAME", "VALID", "INVALID"}, data)
	return nil
}

// DefaultHandler prints the three ambient defaults.
func DefaultHandler(cmd *cobra.Command, _ []string) error {
	c, err := newContext(cmd)
	if err != nil {
		return err
	}

	pushes, err := cmd.Flags().GetStringArray("push")
	if err != nil {
		return err
	}
	for _, p := range pushes {
		kind, d, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("invalid --push %q, expected KIND=DTYPE", p)
		}
		if err := setDefault(c, kind, d); err != nil {
			return err
		}
	}

	var data [][]string
	for _, kind := range []string{"general", "float", "int"} {
		d, err := resolve(c, kind, resolver.Query{})
		if err != nil {
			return err
		}
		data = append(data, []string{kind, d.String()})
	}
	renderTable(cmd.OutOrStdout(), []string{"KIND", "DTYPE"}, data)
	return nil
}

// InferHandler infers the dtype of a JSON literal.
func InferHandler(cmd *cobra.Command, args []string) error {
	c, err := newContext(cmd)
	if err != nil {
		return err
	}
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	v, err := dtype.ParseLiteral(args[0])
	if err != nil {
		return err
	}
	d, err := resolve(c, kind, resolver.Query{Input: v})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), d)
	return nil
}

// PromoteHandler prints the result dtype of the given operands.
func PromoteHandler(cmd *cobra.Command, args []string) error {
	c, err := newContext(cmd)
	if err != nil {
		return err
	}
	d, err := c.ResultType(anys(args)...)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), d)
	return nil
}

// CastHandler reports whether FROM casts safely to TO.
func CastHandler(cmd *cobra.Command, args []string) error {
	c, err := newContext(cmd)
	if err != nil {
		return err
	}
	ok, err := c.CanCast(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), yesNo(ok))
	return nil
}

// ValidHandler checks each dtype against the backend.
func ValidHandler(cmd *cobra.Command, args []string) error {
	c, err := newContext(cmd)
	if err != nil {
		return err
	}
	var data [][]string
	for _, arg := range args {
		closest := "-"
		if d, err := c.ClosestValidDtype(arg); err == nil {
			closest = d.String()
		}
		data = append(data, []string{arg, yesNo(c.ValidDtype(arg)), closest})
	}
	renderTable(cmd.OutOrStdout(), []string{"DTYPE", "VALID", "CLOSEST"}, data)
	return nil
}

// ConvertHandler converts a dtype spelled for --from into this backend's
// native handle.
func ConvertHandler(cmd *cobra.Command, args []string) error {
	c, err := newContext(cmd)
	if err != nil {
		return err
	}
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}
	native, err := c.ConvertDtype(args[0], from)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%v (%T)\n", native, native)
	return nil
}

// SupportedHandler lists the dtypes an operation supports on the backend.
func SupportedHandler(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("backend")
	if err != nil {
		return err
	}
	supported, err := resolver.FunctionSupportedDtypes(args[0], name)
	if err != nil {
		return err
	}
	unsupported, err := resolver.FunctionUnsupportedDtypes(args[0], name)
	if err != nil {
		return err
	}
	renderTable(cmd.OutOrStdout(), []string{"SUPPORTED", "UNSUPPORTED"}, [][]string{
		{joinDtypes(supported), joinDtypes(unsupported)},
	})
	return nil
}

// InfoHandler prints the machine limits of a dtype.
func InfoHandler(cmd *cobra.Command, args []string) error {
	c, err := newContext(cmd)
	if err != nil {
		return err
	}
	d, err := c.AsDtype(args[0])
	if err != nil {
		return err
	}

	var data [][]string
	switch {
	case d.IsInt():
		info, err := c.IInfo(d)
		if err != nil {
			return err
		}
		data = [][]string{
			{"dtype", info.Dtype.String()},
			{"bits", fmt.Sprint(info.Bits)},
			{"min", fmt.Sprint(info.Min)},
			{"max", fmt.Sprint(info.Max)},
		}
	case d.IsFloat():
		info, err := c.FInfo(d)
		if err != nil {
			return err
		}
		data = [][]string{
			{"dtype", info.Dtype.String()},
			{"bits", fmt.Sprint(info.Bits)},
			{"eps", fmt.Sprint(info.Eps)},
			{"min", fmt.Sprint(info.Min)},
			{"max", fmt.Sprint(info.Max)},
			{"smallest_normal", fmt.Sprint(info.SmallestNormal)},
			{"resolution", fmt.Sprint(info.Resolution)},
		}
	default:
		return errors.New("machine limits are defined for integer and floating dtypes only")
	}
	renderTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, data)
	return nil
}

// ShaderHandler prints the kernel source a shader-compiling backend would
// dispatch for an operation over a dtype.
func ShaderHandler(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("backend")
	if err != nil {
		return err
	}
	p, err := backends.New(name)
	if err != nil {
		return err
	}
	src, ok := p.(interface {
		Shader(op string, d dtype.Dtype) (string, error)
	})
	if !ok {
		return fmt.Errorf("backend %q compiles no shaders", name)
	}
	d, err := p.AsDtype(args[1])
	if err != nil {
		return err
	}
	code, err := src.Shader(args[0], d)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), code)
	return nil
}

// EnvHandler prints the configuration environment.
func EnvHandler(cmd *cobra.Command, _ []string) error {
	vars := envconfig.AsMap()
	values := envconfig.Values()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var data [][]string
	for _, k := range keys {
		data = append(data, []string{k, values[k], vars[k].Description})
	}
	renderTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "DESCRIPTION"}, data)
	return nil
}

func setDefault(c *resolver.Context, kind, d string) error {
	switch kind {
	case "general":
		return c.SetDefaultDtype(d)
	case "float":
		return c.SetDefaultFloatDtype(d)
	case "int":
		return c.SetDefaultIntDtype(d)
	}
	return fmt.Errorf("unknown default kind %q", kind)
}

func resolve(c *resolver.Context, kind string, q resolver.Query) (dtype.Dtype, error) {
	switch kind {
	case "general":
		return c.DefaultDtype(q)
	case "float":
		return c.DefaultFloatDtype(q)
	case "int":
		return c.DefaultIntDtype(q)
	}
	return "", fmt.Errorf("unknown default kind %q", kind)
}

func anys(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
