package webgpu

import (
	"fmt"
	"strings"

	"github.com/born-ml/dtypes/internal/dtype"
)

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// binaryOps maps element-wise binary operations to their WGSL expression.
var binaryOps = map[string]string{
	"add": "a[idx] + b[idx]",
	"sub": "a[idx] - b[idx]",
	"mul": "a[idx] * b[idx]",
	"div": "a[idx] / b[idx]",
}

// unaryOps maps element-wise unary operations to their WGSL expression.
var unaryOps = map[string]string{
	"exp":     "exp(input[idx])",
	"log":     "log(input[idx])",
	"sqrt":    "sqrt(input[idx])",
	"rsqrt":   "inverseSqrt(input[idx])",
	"cos":     "cos(input[idx])",
	"sin":     "sin(input[idx])",
	"neg":     "-input[idx]",
	"relu":    "max(input[idx], 0.0)",
	"sigmoid": "1.0 / (1.0 + exp(-input[idx]))",
	"tanh":    "tanh(input[idx])",
}

const binaryTemplate = `{{enable}}
@group(0) @binding(0) var<storage, read> a: array<{{T}}>;
@group(0) @binding(1) var<storage, read> b: array<{{T}}>;
@group(0) @binding(2) var<storage, read_write> result: array<{{T}}>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size({{WG}})
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = {{EXPR}};
    }
}
`

const unaryTemplate = `{{enable}}
@group(0) @binding(0) var<storage, read> input: array<{{T}}>;
@group(0) @binding(1) var<storage, read_write> result: array<{{T}}>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size({{WG}})
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = {{EXPR}};
    }
}
`

// Shader returns the WGSL source of an element-wise kernel for op over d.
// It fails with dtype.ErrUnsupportedDtype when the backend has no kernel
// variant for d.
func (b *Backend) Shader(op string, d dtype.Dtype) (string, error) {
	st, err := b.scalar(d)
	if err != nil {
		return "", fmt.Errorf("%s: shader %s: %w", Name, op, err)
	}
	if dtype.Contains(b.Annotations()[op], d) {
		return "", fmt.Errorf("%s: shader %s: %w: %s", Name, op, dtype.ErrUnsupportedDtype, d)
	}

	tmpl, expr := binaryTemplate, binaryOps[op]
	if expr == "" {
		tmpl, expr = unaryTemplate, unaryOps[op]
	}
	if expr == "" {
		return "", fmt.Errorf("%s: shader %s: unknown operation", Name, op)
	}

	enable := ""
	if st == F16 {
		enable = "enable f16;\n"
	}
	return strings.NewReplacer(
		"{{enable}}", enable,
		"{{T}}", st.String(),
		"{{WG}}", fmt.Sprint(workgroupSize),
		"{{EXPR}}", expr,
	).Replace(tmpl), nil
}
