package filterexpr

import (
	"reflect"
	"strings"
	"testing"
)

type listRequest struct {
	filter  string
	orderBy string
}

func (r listRequest) GetFilter() string  { return r.filter }
func (r listRequest) GetOrderBy() string { return r.orderBy }

type listParams struct {
	Level        string
	Module       string
	Modules      []string
	ModulePrefix string
	ScoreMin     *float64
	OrderNo      *int32

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

var testSchema = ResourceSchema{
	Filter: map[string]FilterField{
		"level": {
			Kind: KindString,
			Ops:  map[Op]string{OpEQ: "Level"},
		},
		"module": {
			Kind: KindString,
			Ops: map[Op]string{
				OpEQ: "Module",
				OpIN: "Modules",
				OpSW: "ModulePrefix",
			},
		},
		"score": {
			Kind: KindNumber,
			Ops:  map[Op]string{OpGTE: "ScoreMin"},
		},
		"ord": {
			Kind: KindNumber,
			Ops:  map[Op]string{OpEQ: "OrderNo"},
		},
	},
	Order: OrderSchema{
		DefaultPrimary: "ord",
		FallbackKey:    "id",
		Fields: map[string]OrderField{
			"ord":   {Expr: "ord"},
			"level": {Expr: "level"},
			"id":    {Expr: "id"},
		},
	},
}

func TestBindConjunction(t *testing.T) {
	var params listParams
	req := listRequest{filter: `level == "a2" && module.startsWith("gre") && score >= 0.5`}

	if err := Bind(req, &params, testSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}

	if params.Level != "a2" {
		t.Errorf("expected Level a2, got %q", params.Level)
	}
	if params.ModulePrefix != "gre" {
		t.Errorf("expected ModulePrefix gre, got %q", params.ModulePrefix)
	}
	if params.ScoreMin == nil || *params.ScoreMin != 0.5 {
		t.Errorf("expected ScoreMin 0.5, got %v", params.ScoreMin)
	}
	if params.Module != "" {
		t.Errorf("expected Module unset, got %q", params.Module)
	}
}

func TestBindInOperator(t *testing.T) {
	var params listParams
	req := listRequest{filter: `module in ["greetings", "travel"]`}

	if err := Bind(req, &params, testSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}

	want := []string{"greetings", "travel"}
	if !reflect.DeepEqual(params.Modules, want) {
		t.Fatalf("expected Modules %v, got %v", want, params.Modules)
	}
}

func TestBindIntegerLiteralIntoPointer(t *testing.T) {
	var params listParams
	req := listRequest{filter: `ord == 3`}

	if err := Bind(req, &params, testSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if params.OrderNo == nil || *params.OrderNo != 3 {
		t.Fatalf("expected OrderNo 3, got %v", params.OrderNo)
	}
}

func TestBindDefaultsOrdering(t *testing.T) {
	var params listParams
	if err := Bind(listRequest{}, &params, testSchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}

	if params.PrimaryKey != "ord" || params.PrimaryDesc {
		t.Errorf("expected default primary ord asc, got %q desc=%v", params.PrimaryKey, params.PrimaryDesc)
	}
	if params.SecondaryKey != "id" || params.SecondaryDesc {
		t.Errorf("expected fallback secondary id asc, got %q desc=%v", params.SecondaryKey, params.SecondaryDesc)
	}
}

func TestBindOrderByVariants(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		want    listParams
	}{
		{
			name:    "single desc key keeps fallback",
			orderBy: "level desc",
			want:    listParams{PrimaryKey: "level", PrimaryDesc: true, SecondaryKey: "id"},
		},
		{
			name:    "two explicit keys",
			orderBy: "level desc, ord asc",
			want:    listParams{PrimaryKey: "level", PrimaryDesc: true, SecondaryKey: "ord"},
		},
		{
			name:    "primary equals fallback gets default tiebreak",
			orderBy: "id desc",
			want:    listParams{PrimaryKey: "id", PrimaryDesc: true, SecondaryKey: "ord"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var params listParams
			if err := Bind(listRequest{orderBy: tc.orderBy}, &params, testSchema); err != nil {
				t.Fatalf("Bind returned error: %v", err)
			}
			if params.PrimaryKey != tc.want.PrimaryKey || params.PrimaryDesc != tc.want.PrimaryDesc {
				t.Errorf("primary: got %q desc=%v, want %q desc=%v",
					params.PrimaryKey, params.PrimaryDesc, tc.want.PrimaryKey, tc.want.PrimaryDesc)
			}
			if params.SecondaryKey != tc.want.SecondaryKey || params.SecondaryDesc != tc.want.SecondaryDesc {
				t.Errorf("secondary: got %q desc=%v, want %q desc=%v",
					params.SecondaryKey, params.SecondaryDesc, tc.want.SecondaryKey, tc.want.SecondaryDesc)
			}
		})
	}
}

func TestBindRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		orderBy string
		want    string
	}{
		{name: "unknown field", filter: `xp == 5`, want: "not allowed"},
		{name: "operator not whitelisted", filter: `level >= "a1"`, want: "operator"},
		{name: "wrong literal kind", filter: `level == 1`, want: "expected string"},
		{name: "or is rejected", filter: `level == "a1" || score >= 1`, want: "only AND"},
		{name: "non literal rhs", filter: `score >= ord`, want: "right-hand side"},
		{name: "mixed list", filter: `module in ["a", 2]`, want: "string literals"},
		{name: "empty list", filter: `module in []`, want: "not be empty"},
		{name: "fractional integer", filter: `ord == 1.5`, want: "integer"},
		{name: "unsortable key", orderBy: "module", want: "ordering"},
		{name: "bad direction", orderBy: "ord sideways", want: "direction"},
		{name: "too many keys", orderBy: "ord, level, id", want: "at most two"},
		{name: "duplicate keys", orderBy: "ord, ord desc", want: "duplicate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var params listParams
			err := Bind(listRequest{filter: tc.filter, orderBy: tc.orderBy}, &params, testSchema)
			if err == nil {
				t.Fatalf("expected error for filter=%q order_by=%q", tc.filter, tc.orderBy)
			}
			if !strings.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.want)) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestBindNilBinding(t *testing.T) {
	var params *listParams
	if err := Bind(listRequest{filter: `level == "a1"`}, params, testSchema); err == nil {
		t.Fatal("expected error for nil binding")
	}
}
