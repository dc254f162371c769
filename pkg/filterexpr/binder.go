// Package filterexpr binds AIP-160 style list filters, expressed as a
// restricted CEL subset, onto plain query parameter structs. Only
// conjunctions of whitelisted field predicates are accepted; the schema
// decides which fields, operators and literal kinds a resource allows.
package filterexpr

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Msg is the request shape the binder reads raw inputs from.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind is the literal kind a filter field accepts.
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
)

// Op is a comparison the schema may whitelist for a field.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// FilterField whitelists the operators for one filter field. Ops maps each
// allowed operator to the destination field name on the params struct.
type FilterField struct {
	Kind ValueKind
	Ops  map[Op]string
}

// OrderField maps an order key to the SQL expression it sorts by.
type OrderField struct {
	Expr string
}

// OrderSchema declares the sortable keys and the defaults applied when the
// request carries no order_by.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             map[string]OrderField
}

// ResourceSchema bundles the filter and order rules for one list endpoint.
type ResourceSchema struct {
	Filter map[string]FilterField
	Order  OrderSchema
}

// Bind parses msg's filter and order_by and writes the results into binding.
// Filter predicates land on the struct fields named by the schema's Ops maps;
// ordering lands on the PrimaryKey/PrimaryDesc/SecondaryKey/SecondaryDesc
// fields, which every binding struct must carry.
func Bind[M Msg, P any](msg M, binding *P, schema ResourceSchema) error {
	if binding == nil {
		return errors.New("binding must not be nil")
	}

	dest := reflect.ValueOf(binding).Elem()
	if dest.Kind() != reflect.Struct {
		return errors.New("binding must point to a struct")
	}

	if err := bindFilter(dest, msg.GetFilter(), schema.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	order, err := parseOrderBy(msg.GetOrderBy(), schema.Order)
	if err != nil {
		return fmt.Errorf("order_by: %w", err)
	}
	return order.apply(dest)
}

type predicate struct {
	field string
	op    Op
	value any
}

func bindFilter(dest reflect.Value, filter string, fields map[string]FilterField) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}
	if len(fields) == 0 {
		return errors.New("schema allows no filter fields")
	}

	env, err := filterEnv(fields)
	if err != nil {
		return err
	}
	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("parse: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return fmt.Errorf("convert ast: %w", err)
	}

	preds, err := flattenAnd(parsed.GetExpr())
	if err != nil {
		return err
	}

	for _, pred := range preds {
		rule, ok := fields[pred.field]
		if !ok {
			return fmt.Errorf("field %q is not allowed", pred.field)
		}
		target, ok := rule.Ops[pred.op]
		if !ok {
			return fmt.Errorf("operator %q is not allowed for field %q", string(pred.op), pred.field)
		}
		if err := checkLiteralKind(rule.Kind, pred.op, pred.value); err != nil {
			return fmt.Errorf("field %q: %w", pred.field, err)
		}
		if err := setField(dest, target, pred.value); err != nil {
			return fmt.Errorf("field %q: %w", pred.field, err)
		}
	}
	return nil
}

func filterEnv(fields map[string]FilterField) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, rule := range fields {
		switch rule.Kind {
		case KindString:
			opts = append(opts, cel.Variable(name, cel.StringType))
		case KindNumber:
			opts = append(opts, cel.Variable(name, cel.DoubleType))
		default:
			return nil, fmt.Errorf("field %q: unknown kind %s", name, rule.Kind)
		}
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

// flattenAnd walks nested "_&&_" calls and returns the leaf predicates in
// source order. Any other logical operator is rejected.
func flattenAnd(expr *exprpb.Expr) ([]predicate, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}
	call := expr.GetCallExpr()
	if call == nil {
		return nil, errors.New("expected a comparison")
	}

	switch call.Function {
	case "_&&_":
		if call.Target != nil || len(call.Args) < 2 {
			return nil, errors.New("malformed AND expression")
		}
		var out []predicate
		for _, arg := range call.Args {
			leaves, err := flattenAnd(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, leaves...)
		}
		return out, nil
	case "_||_", "_?_:_", "!_":
		return nil, fmt.Errorf("operator %q is not supported; only AND is allowed", call.Function)
	default:
		pred, err := leafPredicate(call)
		if err != nil {
			return nil, err
		}
		return []predicate{pred}, nil
	}
}

func leafPredicate(call *exprpb.Expr_Call) (predicate, error) {
	switch call.Function {
	case "_==_":
		return comparison(call, OpEQ)
	case "_>=_":
		return comparison(call, OpGTE)
	case "_<=_":
		return comparison(call, OpLTE)
	case "_in_", "@in":
		return membership(call)
	case "startsWith":
		return prefixMatch(call)
	default:
		return predicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func comparison(call *exprpb.Expr_Call, op Op) (predicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return predicate{}, fmt.Errorf("operator %q expects a field and a literal", string(op))
	}
	field, err := identName(call.Args[0])
	if err != nil {
		return predicate{}, err
	}
	value, err := literalValue(call.Args[1])
	if err != nil {
		return predicate{}, err
	}
	return predicate{field: field, op: op, value: value}, nil
}

func membership(call *exprpb.Expr_Call) (predicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return predicate{}, errors.New("in expects a field and a list literal")
	}
	field, err := identName(call.Args[0])
	if err != nil {
		return predicate{}, err
	}
	value, err := literalValue(call.Args[1])
	if err != nil {
		return predicate{}, err
	}
	if _, ok := value.([]string); !ok {
		return predicate{}, errors.New("in requires a list of string literals")
	}
	return predicate{field: field, op: OpIN, value: value}, nil
}

// prefixMatch handles both call shapes cel-go produces for
// field.startsWith("x"), receiver style and plain function style.
func prefixMatch(call *exprpb.Expr_Call) (predicate, error) {
	fieldExpr := call.Target
	args := call.Args
	if fieldExpr == nil {
		if len(args) != 2 {
			return predicate{}, errors.New("startsWith expects a field and a string literal")
		}
		fieldExpr = args[0]
		args = args[1:]
	}
	if len(args) != 1 {
		return predicate{}, errors.New("startsWith expects exactly one argument")
	}

	field, err := identName(fieldExpr)
	if err != nil {
		return predicate{}, err
	}
	value, err := literalValue(args[0])
	if err != nil {
		return predicate{}, err
	}
	prefix, ok := value.(string)
	if !ok {
		return predicate{}, errors.New("startsWith requires a string literal")
	}
	return predicate{field: field, op: OpSW, value: prefix}, nil
}

func identName(expr *exprpb.Expr) (string, error) {
	ident := expr.GetIdentExpr()
	if ident == nil {
		return "", errors.New("left-hand side must be a field name")
	}
	return ident.GetName(), nil
}

func literalValue(expr *exprpb.Expr) (any, error) {
	if c := expr.GetConstExpr(); c != nil {
		switch c.ConstantKind.(type) {
		case *exprpb.Constant_StringValue:
			return c.GetStringValue(), nil
		case *exprpb.Constant_Int64Value:
			return float64(c.GetInt64Value()), nil
		case *exprpb.Constant_Uint64Value:
			return float64(c.GetUint64Value()), nil
		case *exprpb.Constant_DoubleValue:
			return c.GetDoubleValue(), nil
		default:
			return nil, fmt.Errorf("unsupported literal %T", c.ConstantKind)
		}
	}

	if list := expr.GetListExpr(); list != nil {
		items := make([]string, len(list.GetElements()))
		for i, elem := range list.GetElements() {
			value, err := literalValue(elem)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			str, ok := value.(string)
			if !ok {
				return nil, errors.New("list elements must be string literals")
			}
			items[i] = str
		}
		return items, nil
	}

	return nil, errors.New("right-hand side must be a literal or list literal")
}

func checkLiteralKind(kind ValueKind, op Op, value any) error {
	if op == OpIN {
		list, ok := value.([]string)
		if !ok || kind != KindString {
			return errors.New("in is only valid for string fields")
		}
		if len(list) == 0 {
			return errors.New("list must not be empty")
		}
		for _, item := range list {
			if item == "" {
				return errors.New("list must not contain empty strings")
			}
		}
		return nil
	}

	switch kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return errors.New("expected string literal")
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			return errors.New("expected number literal")
		}
	default:
		return fmt.Errorf("unknown kind %s", kind)
	}
	return nil
}

// setField writes a parsed literal onto the named params struct field.
// Pointer fields are allocated so callers can distinguish unset from zero.
func setField(dest reflect.Value, name string, value any) error {
	field := dest.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("params struct %s has no field %q", dest.Type(), name)
	}
	if !field.CanSet() {
		return fmt.Errorf("params field %q is not settable", name)
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}

	switch v := value.(type) {
	case string:
		if field.Kind() != reflect.String {
			return fmt.Errorf("params field %q must be a string, is %s", name, field.Kind())
		}
		field.SetString(v)
	case []string:
		if field.Type() != reflect.TypeOf([]string(nil)) {
			return fmt.Errorf("params field %q must be []string, is %s", name, field.Type())
		}
		field.Set(reflect.ValueOf(append([]string(nil), v...)))
	case float64:
		return setNumber(field, name, v)
	default:
		return fmt.Errorf("unsupported literal type %T", value)
	}
	return nil
}

func setNumber(field reflect.Value, name string, value float64) error {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		field.SetFloat(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if math.Trunc(value) != value {
			return fmt.Errorf("params field %q requires an integer, got %v", name, value)
		}
		if field.OverflowInt(int64(value)) {
			return fmt.Errorf("value %v overflows params field %q", value, name)
		}
		field.SetInt(int64(value))
	default:
		return fmt.Errorf("params field %q must be numeric, is %s", name, field.Kind())
	}
	return nil
}
