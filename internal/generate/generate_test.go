package generate

import (
	"context"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	"github.com/damedic/aws-toolbox-go/internal/generate/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseService(t *testing.T, service, version string, cust *config.Service) ir.Service {
	t.Helper()

	bundle, err := model.Load(os.DirFS(filepath.Join("testdata", "models")), service+"/"+version)
	require.NoError(t, err)
	if cust == nil {
		c, err := config.LoadDir(filepath.Join("testdata", "customizations"), service)
		require.NoError(t, err)
		cust = &c
	}
	svc, err := ir.Parse(bundle, *cust)
	require.NoError(t, err)
	return svc
}

func generate(t *testing.T, service, version string, workers int) Files {
	t.Helper()

	svc := parseService(t, service, version, nil)
	files, err := Run(context.Background(), svc, RunOptions{
		Generators: DefaultGenerators(emit.DefaultRegistry()),
		Workers:    workers,
	})
	require.NoError(t, err)
	return files
}

// compact collapses whitespace so assertions do not depend on gofmt
// alignment.
func compact(b []byte) string {
	return strings.Join(strings.Fields(string(b)), " ")
}

func TestRunFiles(t *testing.T) {
	tests := []struct {
		service, version string
		want             []string
	}{
		{
			service: "ec2",
			version: "2016-11-15",
			want: []string{
				"ec2cmdlets/api.go",
				"ec2cmdlets/commands.go",
				"ec2cmdlets/create_tags.go",
				"ec2cmdlets/describe_instances.go",
				"ec2cmdlets/describe_tags.go",
				"ec2cmdlets/doc.go",
				"ec2cmdlets/start_instances.go",
				"ec2cmdlets/terminate_instances.go",
			},
		},
		{
			service: "kms",
			version: "2014-11-01",
			want: []string{
				"kmscmdlets/api.go",
				"kmscmdlets/commands.go",
				"kmscmdlets/doc.go",
				"kmscmdlets/encrypt.go",
				"kmscmdlets/enums.go",
				"kmscmdlets/list_keys.go",
				"kmscmdlets/tag_resource.go",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			files := generate(t, tt.service, tt.version, 0)

			if diff := cmp.Diff(tt.want, files.Names()); diff != "" {
				t.Errorf("files mismatch (-want +got):\n%s", diff)
			}

			fset := token.NewFileSet()
			for _, name := range files.Names() {
				src := files[name]
				assert.True(t, strings.HasPrefix(string(src), "// "+Header), "%s lacks the header", name)
				_, err := parser.ParseFile(fset, name, src, parser.ParseComments)
				assert.NoError(t, err, "%s does not parse", name)
			}
		})
	}
}

func TestRunDescribeInstances(t *testing.T) {
	src := compact(generate(t, "ec2", "2016-11-15", 0)["ec2cmdlets/describe_instances.go"])

	for _, want := range []string{
		"package ec2cmdlets",
		"// GetEC2InstanceCmdlet is the Get-EC2Instance cmdlet. It calls the DescribeInstances operation.",
		"InstanceId []any `alias:\"InstanceIds,Instance\" flag:\"instance-id\" position:\"0\"`",
		"Select string `flag:\"select\"`",
		"NoAutoIteration bool `flag:\"no-auto-iteration\"`",
		"type getEC2InstanceContext struct {",
		"v, err := cmdlet.InstanceIDs(c.InstanceId)",
		"input.InstanceIds = aws.StringSlice(ctx.InstanceId)",
		"func (c *GetEC2InstanceCmdlet) Execute(ctx context.Context, client API) (any, error) {",
		"output, err := client.DescribeInstancesWithContext(ctx, input)",
		"key := cmdlet.PageKey(output.NextToken)",
		"return nil, cmdlet.RepeatedTokenError(key)",
		"input.NextToken = output.NextToken",
		"return cmdlet.Flatten(pages), nil",
		"\"Reservations\": func(c *GetEC2InstanceCmdlet, o *ec2.DescribeInstancesOutput) any { return o.Reservations }",
		"\"^InstanceId\": func(c *GetEC2InstanceCmdlet, o *ec2.DescribeInstancesOutput) any { return c.InstanceId }",
		"var _ cmdlet.Cmdlet = (*GetEC2InstanceCmdlet)(nil)",
		"func NewGetEC2InstanceCommand(newClient func() (API, error)) *cobra.Command {",
		"Use: \"get-ec2instance [instance-id]\"",
		"Aliases: []string{\"Get-EC2Instance\"}",
	} {
		assert.Contains(t, src, want)
	}
	assert.NotContains(t, src, "DryRun")
}

func TestRunListKeys(t *testing.T) {
	src := compact(generate(t, "kms", "2014-11-01", 0)["kmscmdlets/list_keys.go"])

	assert.Contains(t, src, "if !aws.BoolValue(output.Truncated) { break }")
	assert.Contains(t, src, "key := cmdlet.PageKey(output.NextMarker)")
	assert.Contains(t, src, "input.Marker = output.NextMarker")
	assert.Contains(t, src, "sel = \"Keys\"")
}

func TestRunEncrypt(t *testing.T) {
	src := compact(generate(t, "kms", "2014-11-01", 0)["kmscmdlets/encrypt.go"])

	assert.Contains(t, src, "v, err := cmdlet.ReadBlob(c.Plaintext)")
	assert.Contains(t, src, "sel = \"CiphertextBlob\"")
	assert.NotContains(t, src, "NoAutoIteration")
	assert.Contains(t, src, "_ = cmd.RegisterFlagCompletionFunc(\"encryption-algorithm\", cobra.FixedCompletions(EncryptionAlgorithmSpecValues, cobra.ShellCompDirectiveNoFileComp))")
}

func TestRunEnums(t *testing.T) {
	files := generate(t, "kms", "2014-11-01", 0)
	assert.Contains(t, compact(files["kmscmdlets/enums.go"]), "var EncryptionAlgorithmSpecValues = []string{\"SYMMETRIC_DEFAULT\", \"RSAES_OAEP_SHA_1\", \"RSAES_OAEP_SHA_256\"}")

	_, ok := generate(t, "ec2", "2016-11-15", 0)["ec2cmdlets/enums.go"]
	assert.False(t, ok)
}

func TestRunAdditional(t *testing.T) {
	files := generate(t, "ec2", "2016-11-15", 0)

	api := compact(files["ec2cmdlets/api.go"])
	assert.Contains(t, api, "DescribeInstancesWithContext(aws.Context, *ec2.DescribeInstancesInput, ...request.Option) (*ec2.DescribeInstancesOutput, error)")
	assert.Contains(t, api, "var _ API = (*ec2.EC2)(nil)")
	assert.Contains(t, api, "return ec2.New(sess), nil")

	commands := compact(files["ec2cmdlets/commands.go"])
	assert.Contains(t, commands, "NewGetEC2InstanceCommand(newClient), NewGetEC2TagCommand(newClient), NewNewEC2TagCommand(newClient), NewRemoveEC2InstanceCommand(newClient), NewStartEC2InstanceCommand(newClient),")
	assert.Contains(t, commands, "Use: \"ec2\"")

	assert.Contains(t, compact(files["ec2cmdlets/doc.go"]), "// Package ec2cmdlets provides generated cmdlets for Amazon Elastic Compute Cloud (API version 2016-11-15).")
}

func TestRunDeterministic(t *testing.T) {
	want := generate(t, "ec2", "2016-11-15", 1)
	for _, workers := range []int{2, 8} {
		got := generate(t, "ec2", "2016-11-15", workers)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("workers=%d: output differs (-want +got):\n%s", workers, diff)
		}
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("shape mismatch", func(t *testing.T) {
		svc := parseService(t, "kms", "2014-11-01", &config.Service{Prefix: "KMS"})
		_, err := Run(context.Background(), svc, RunOptions{Generators: DefaultGenerators(emit.DefaultRegistry())})
		assert.ErrorIs(t, err, emit.ErrShapeMismatch)
		assert.ErrorContains(t, err, "TagResource")
	})

	t.Run("no emitter", func(t *testing.T) {
		svc := parseService(t, "kms", "2014-11-01", nil)
		_, err := Run(context.Background(), svc, RunOptions{Generators: DefaultGenerators(emit.NewRegistry(nil))})
		assert.ErrorIs(t, err, emit.ErrNoEmitter)
	})

	t.Run("cancelled", func(t *testing.T) {
		svc := parseService(t, "kms", "2014-11-01", nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, svc, RunOptions{Generators: DefaultGenerators(emit.DefaultRegistry())})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteCheck(t *testing.T) {
	dir := t.TempDir()
	files := generate(t, "kms", "2014-11-01", 0)

	stale, err := files.Check(dir)
	require.NoError(t, err)
	assert.Equal(t, files.Names(), stale)

	require.NoError(t, files.Write(dir))
	stale, err = files.Check(dir)
	require.NoError(t, err)
	assert.Empty(t, stale)

	pkg := filepath.Join(dir, "kmscmdlets")
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "encrypt.go"), []byte("// edited\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "decrypt.go"), []byte("// "+Header+"\n\npackage kmscmdlets\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "manual.go"), []byte("package kmscmdlets\n"), 0o644))

	stale, err = files.Check(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"kmscmdlets/decrypt.go", "kmscmdlets/encrypt.go"}, stale)

	require.NoError(t, files.Write(dir))
	stale, err = files.Check(dir)
	require.NoError(t, err)
	assert.Empty(t, stale)
	assert.NoFileExists(t, filepath.Join(pkg, "decrypt.go"))
	assert.FileExists(t, filepath.Join(pkg, "manual.go"))
}

func TestCommandHelp(t *testing.T) {
	svc := parseService(t, "ec2", "2016-11-15", nil)
	var op ir.Operation
	for _, o := range svc.Operations {
		if o.Name == "DescribeInstances" {
			op = o
		}
	}

	help, err := CommandGenerator{Registry: emit.DefaultRegistry()}.help(svc, op)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(help, "Get-EC2Instance calls the DescribeInstances operation of EC2.\n"))
	assert.Contains(t, help, "Parameters:\n")
	assert.Contains(t, help, "  --instance-id\n    Aliases: --instance-ids, --instance\n    Position: 0\n")
	assert.Contains(t, help, "  --next-token\n    Pagination token; set to resume paging.\n")
	assert.Contains(t, help, "  --select\n    Default: Reservations\n")
	assert.Contains(t, help, "  --no-auto-iteration\n    Returns the first page only. Otherwise pages are requested while NextToken is set. --max-results sets the page size.\n")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "Describes instances.", short(ir.Operation{Doc: "<p>Describes instances. More text.</p>"}))
	assert.Equal(t, "Calls Foo.", short(ir.Operation{Name: "Foo"}))
}

// typeCheck type checks the generated package pkg against its imports,
// which are loaded from source through the module.
func typeCheck(t *testing.T, files Files, pkg string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	fset := token.NewFileSet()
	var parsed []*ast.File
	for _, name := range files.Names() {
		if path.Dir(name) != pkg {
			continue
		}
		// Positions inside this directory make imports resolve in this module.
		f, err := parser.ParseFile(fset, filepath.Join(wd, path.Base(name)), files[name], 0)
		require.NoError(t, err)
		parsed = append(parsed, f)
	}
	require.NotEmpty(t, parsed)

	var errs []error
	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			errs = append(errs, err)
		},
	}
	_, _ = conf.Check(pkg, fset, parsed, nil)
	for _, err := range errs {
		t.Error(err)
	}
}

func TestGeneratedPackagesTypeCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the SDK service packages from source")
	}

	tests := []struct {
		service, version, pkg string
	}{
		{"ec2", "2016-11-15", "ec2cmdlets"},
		{"kms", "2014-11-01", "kmscmdlets"},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			typeCheck(t, generate(t, tt.service, tt.version, 0), tt.pkg)
		})
	}
}
