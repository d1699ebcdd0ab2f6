package emit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	. "github.com/dave/jennifer/jen"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func configParam(emitter string) config.Param {
	return config.Param{Emitter: emitter}
}

func renderType(s *Statement) string {
	return strings.TrimPrefix(fmt.Sprintf("%#v", Var().Id("x").Add(s)), "var x ")
}

func TestTypes(t *testing.T) {
	a := NewAnalyzer(ir.Service{SDKImportPath: "github.com/aws/aws-sdk-go/service/ec2"}, ir.Operation{})

	str := &ir.ShapeInfo{Name: "String", Kind: ir.KindString}
	integer := &ir.ShapeInfo{Name: "Integer", Kind: ir.KindInteger}
	filter := &ir.ShapeInfo{Name: "Filter", Kind: ir.KindStructure}

	tests := []struct {
		name      string
		shape     *ir.ShapeInfo
		paramType string
		sdkType   string
		toSDK     string
	}{
		{"string", str, "*string", "*string", "v"},
		{"integer", integer, "*int64", "*int64", "v"},
		{"timestamp", &ir.ShapeInfo{Kind: ir.KindTimestamp}, "*time.Time", "*time.Time", "v"},
		{"blob", &ir.ShapeInfo{Kind: ir.KindBlob}, "[]byte", "[]byte", "v"},
		{"string list", &ir.ShapeInfo{Kind: ir.KindList, Elem: str}, "[]string", "[]*string", "aws.StringSlice(v)"},
		{"integer list", &ir.ShapeInfo{Kind: ir.KindList, Elem: integer}, "[]int64", "[]*int64", "aws.Int64Slice(v)"},
		{"string map", &ir.ShapeInfo{Kind: ir.KindMap, Key: str, Value: str}, "map[string]string", "map[string]*string", "aws.StringMap(v)"},
		{"structure", filter, "*ec2.Filter", "*ec2.Filter", "v"},
		{"structure list", &ir.ShapeInfo{Kind: ir.KindList, Elem: filter}, "[]*ec2.Filter", "[]*ec2.Filter", "v"},
		{
			"nested list",
			&ir.ShapeInfo{Kind: ir.KindList, Elem: &ir.ShapeInfo{Kind: ir.KindList, Elem: str}},
			"[][]*string", "[][]*string", "v",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{
				renderType(a.ParamType(tt.shape)),
				renderType(a.SDKType(tt.shape)),
				strings.TrimPrefix(fmt.Sprintf("%#v", Id("x").Op("=").Add(a.ToSDK(tt.shape, Id("v")))), "x = "),
			}
			want := []string{tt.paramType, tt.sdkType, tt.toSDK}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStructTags(t *testing.T) {
	a := NewAnalyzer(ir.Service{}, ir.Operation{})
	pos := 1
	p := ir.Parameter{
		Name:     "Limit",
		FlagName: "limit",
		Required: true,
		Shape:    &ir.ShapeInfo{Kind: ir.KindInteger, Min: apd.New(1, 0), Max: apd.New(1000, 0)},
		Custom:   config.Param{Position: &pos},
	}

	want := map[string]string{
		"flag":     "limit",
		"alias":    "Max,First",
		"position": "1",
		"validate": "required,min=1,max=1000",
	}
	if diff := cmp.Diff(want, a.Tags(p, []string{"Max", "First"})); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	p.IsPagingToken = true
	assert.Equal(t, "min=1,max=1000", a.Tags(p, nil)["validate"])
}
