package ir

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFixture(t *testing.T, service, version string) Service {
	t.Helper()

	bundle, err := model.Load(os.DirFS(filepath.Join("..", "testdata", "models")), service+"/"+version)
	require.NoError(t, err)
	cust, err := config.LoadDir(filepath.Join("..", "testdata", "customizations"), service)
	require.NoError(t, err)

	svc, err := Parse(bundle, cust)
	require.NoError(t, err)
	return svc
}

func operation(t *testing.T, svc Service, name string) Operation {
	t.Helper()
	for _, op := range svc.Operations {
		if op.Name == name {
			return op
		}
	}
	t.Fatalf("operation %s not found", name)
	return Operation{}
}

func TestParseService(t *testing.T) {
	svc := parseFixture(t, "ec2", "2016-11-15")

	assert.Equal(t, "EC2", svc.ID)
	assert.Equal(t, "EC2", svc.Prefix)
	assert.Equal(t, "ec2cmdlets", svc.PackageName)
	assert.Equal(t, "github.com/aws/aws-sdk-go/service/ec2", svc.SDKImportPath)

	var cmdlets []string
	for _, op := range svc.Operations {
		cmdlets = append(cmdlets, op.Name+"="+op.CmdletName)
	}
	want := []string{
		"CreateTags=New-EC2Tag",
		"DescribeInstances=Get-EC2Instance",
		"DescribeTags=Get-EC2Tag",
		"StartInstances=Start-EC2Instance",
		"TerminateInstances=Remove-EC2Instance",
	}
	if diff := cmp.Diff(want, cmdlets); diff != "" {
		t.Errorf("cmdlets mismatch (-want +got):\n%s", diff)
	}
}

func TestParseParameters(t *testing.T) {
	op := operation(t, parseFixture(t, "ec2", "2016-11-15"), "DescribeInstances")

	assert.Equal(t, "GetEC2InstanceCmdlet", op.TypeName)
	assert.Equal(t, "get-ec2instance", op.CommandName)
	assert.Equal(t, "describe_instances", op.FileName)

	var got []string
	for _, p := range op.Parameters {
		got = append(got, p.Name+":"+p.FieldName+":"+p.FlagName+":"+p.Shape.Signature())
	}
	want := []string{
		"Filters:Filters:filters:list<structure:Filter>",
		"InstanceIds:InstanceId:instance-id:list<string>",
		"MaxResults:MaxResults:max-results:integer",
		"NextToken:NextToken:next-token:string",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}

	ids := op.Parameters[1]
	assert.Equal(t, []string{"InstanceIds"}, ids.Custom.Aliases)
	require.NotNil(t, ids.Custom.Position)
	assert.Equal(t, 0, *ids.Custom.Position)

	max := op.Parameters[2].Shape
	assert.Equal(t, "5", max.Min.String())
	assert.Equal(t, "1000", max.Max.String())

	assert.True(t, op.Parameters[3].IsPagingToken)
	assert.False(t, op.Parameters[2].IsPagingToken)
}

func TestParseRequired(t *testing.T) {
	op := operation(t, parseFixture(t, "ec2", "2016-11-15"), "StartInstances")

	require.NotEmpty(t, op.Parameters)
	assert.Equal(t, "InstanceId", op.Parameters[0].FieldName)
	assert.True(t, op.Parameters[0].Required)
	for _, p := range op.Parameters {
		assert.NotEqual(t, "DryRun", p.Name, "DryRun is excluded service wide")
	}
}

func TestParsePaging(t *testing.T) {
	ec2 := parseFixture(t, "ec2", "2016-11-15")
	kms := parseFixture(t, "kms", "2014-11-01")

	tests := []struct {
		name   string
		op     Operation
		paging *Paging
		sel    string
	}{
		{
			name: "token",
			op:   operation(t, ec2, "DescribeInstances"),
			paging: &Paging{
				InputTokens:  []string{"NextToken"},
				OutputTokens: []string{"NextToken"},
				LimitKey:     "MaxResults",
				ResultKeys:   []string{"Reservations"},
			},
			sel: "Reservations",
		},
		{
			name: "marker",
			op:   operation(t, kms, "ListKeys"),
			paging: &Paging{
				InputTokens:  []string{"Marker"},
				OutputTokens: []string{"NextMarker"},
				LimitKey:     "Limit",
				MoreResults:  "Truncated",
				ResultKeys:   []string{"Keys"},
			},
			sel: "Keys",
		},
		{
			name: "not paginated",
			op:   operation(t, ec2, "StartInstances"),
			sel:  "*",
		},
		{
			name: "custom select",
			op:   operation(t, kms, "Encrypt"),
			sel:  "CiphertextBlob",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.paging, tt.op.Paging); diff != "" {
				t.Errorf("paging mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.sel, tt.op.DefaultSelect)
		})
	}
}

func TestFilterPaged(t *testing.T) {
	kms := parseFixture(t, "kms", "2014-11-01")

	paged := FilterPaged(kms.Operations)
	require.NotEmpty(t, paged)
	var names []string
	for _, op := range paged {
		require.NotNil(t, op.Paging)
		names = append(names, op.Name)
	}
	assert.Contains(t, names, "ListKeys")
	assert.NotContains(t, names, "Encrypt")
	assert.Nil(t, FilterPaged(nil))
}

func TestParseShapes(t *testing.T) {
	op := operation(t, parseFixture(t, "kms", "2014-11-01"), "Encrypt")

	assert.Equal(t, "Invoke-KMSEncrypt", op.CmdletName)

	sigs := make(map[string]string)
	for _, p := range op.Parameters {
		sigs[p.Name] = p.Shape.Signature()
	}
	want := map[string]string{
		"KeyId":               "string",
		"Plaintext":           "blob",
		"EncryptionContext":   "map<string,string>",
		"GrantTokens":         "list<string>",
		"EncryptionAlgorithm": "string",
	}
	if diff := cmp.Diff(want, sigs); diff != "" {
		t.Errorf("signatures mismatch (-want +got):\n%s", diff)
	}

	plaintext := op.Parameters[1].Shape
	assert.True(t, plaintext.Sensitive)
	assert.Equal(t, "4096", plaintext.Max.String())
	assert.NotEmpty(t, op.Parameters[4].Shape.Enum)
}

func TestParseDocs(t *testing.T) {
	op := operation(t, parseFixture(t, "ec2", "2016-11-15"), "DescribeInstances")

	assert.NotEmpty(t, op.Doc)
	assert.Contains(t, op.Parameters[0].Doc, "filters")
	assert.NotEmpty(t, op.Parameters[1].Doc)
}

func testAPI(t *testing.T, doc string) *model.Bundle {
	t.Helper()

	var api model.API
	require.NoError(t, json.Unmarshal([]byte(doc), &api))
	return &model.Bundle{API: &api}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		api  string
		cust config.Service
		want error
	}{
		{
			name: "duplicate cmdlet",
			api: `{
				"metadata": {"serviceId": "Test"},
				"operations": {
					"DescribeThings": {"input": {"shape": "Empty"}},
					"ListThings": {"input": {"shape": "Empty"}}
				},
				"shapes": {"Empty": {"type": "structure", "members": {}}}
			}`,
			want: ErrDuplicateCmdlet,
		},
		{
			name: "document shape",
			api: `{
				"metadata": {"serviceId": "Test"},
				"operations": {"PutThing": {"input": {"shape": "In"}}},
				"shapes": {
					"In": {"type": "structure", "members": {"Body": {"shape": "Doc"}}},
					"Doc": {"type": "structure", "document": true}
				}
			}`,
			want: ErrUnsupportedShape,
		},
		{
			name: "reserved name",
			api: `{
				"metadata": {"serviceId": "Test"},
				"operations": {"GetThing": {"input": {"shape": "In"}}},
				"shapes": {
					"In": {"type": "structure", "members": {"Select": {"shape": "S"}}},
					"S": {"type": "string"}
				}
			}`,
			want: ErrReservedName,
		},
		{
			name: "rename collision",
			api: `{
				"metadata": {"serviceId": "Test"},
				"operations": {"GetThing": {"input": {"shape": "In"}}},
				"shapes": {
					"In": {"type": "structure", "members": {"A": {"shape": "S"}, "B": {"shape": "S"}}},
					"S": {"type": "string"}
				}
			}`,
			cust: config.Service{Params: map[string]config.Param{"B": {Name: "A"}}},
			want: ErrDuplicateParameter,
		},
		{
			name: "invalid select",
			api: `{
				"metadata": {"serviceId": "Test"},
				"operations": {"GetThing": {"output": {"shape": "Out"}}},
				"shapes": {
					"Out": {"type": "structure", "members": {"A": {"shape": "S"}}},
					"S": {"type": "string"}
				}
			}`,
			cust: config.Service{Operations: map[string]config.Operation{"GetThing": {Select: "B"}}},
			want: ErrInvalidSelect,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(testAPI(t, tt.api), tt.cust)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseRecursiveShape(t *testing.T) {
	bundle := testAPI(t, `{
		"metadata": {"serviceId": "Test"},
		"operations": {"GetNode": {"input": {"shape": "Node"}}},
		"shapes": {
			"Node": {"type": "structure", "members": {"Children": {"shape": "Nodes"}}},
			"Nodes": {"type": "list", "member": {"shape": "Node"}}
		}
	}`)

	svc, err := Parse(bundle, config.Service{})
	require.NoError(t, err)

	children := svc.Operations[0].Parameters[0].Shape
	assert.Equal(t, "list<structure:Node>", children.Signature())
	assert.Same(t, children, children.Elem.Fields[0].Shape)
}

func TestParseUnsupportedPaging(t *testing.T) {
	bundle := testAPI(t, `{
		"metadata": {"serviceId": "Test"},
		"operations": {"ListThings": {"input": {"shape": "In"}, "output": {"shape": "Out"}}},
		"shapes": {
			"In": {"type": "structure", "members": {"Token": {"shape": "S"}}},
			"Out": {"type": "structure", "members": {"Page": {"shape": "P"}}},
			"P": {"type": "structure", "members": {"Next": {"shape": "S"}}},
			"S": {"type": "string"}
		}
	}`)
	bundle.Paginators = &model.Paginators{Pagination: map[string]model.Paginator{
		"ListThings": {InputToken: model.StringOrList{"Token"}, OutputToken: model.StringOrList{"Page.Next"}},
	}}

	svc, err := Parse(bundle, config.Service{})
	require.NoError(t, err)
	assert.Nil(t, svc.Operations[0].Paging)
	assert.False(t, svc.Operations[0].Parameters[0].IsPagingToken)
}
