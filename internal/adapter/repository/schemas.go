package repository

import "github.com/atlaslingo/darlingo/pkg/filterexpr"

var listLessonsSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"level": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Level"},
		},
		"module": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Module",
				filterexpr.OpIN: "Modules",
				filterexpr.OpSW: "ModulePrefix",
			},
		},
		"title": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "TitlePrefix"},
		},
		"ord": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "Order",
				filterexpr.OpGTE: "OrderGTE",
				filterexpr.OpLTE: "OrderLTE",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "ord",
		DefaultPrimaryDesc: false,
		FallbackKey:        "id",
		FallbackDesc:       false,
		Fields: map[string]filterexpr.OrderField{
			"ord":   {Expr: "ord"},
			"level": {Expr: "level"},
			"title": {Expr: "title"},
			"id":    {Expr: "id"},
		},
	},
}
