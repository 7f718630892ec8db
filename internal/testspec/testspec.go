package testspec

import (
	"os"
	"path/filepath"
	"testing"
)

// API versions present in the tree.
const (
	APIVersion    = "2021-01-01"
	APIVersionNew = "2022-01-01"
)

// Relative paths of the documents in the tree.
const (
	SpecPath       = "specification/mock/resource-manager/Microsoft.Mock/stable/2021-01-01/mock.json"
	SpecPathNew    = "specification/mock/resource-manager/Microsoft.Mock/stable/2022-01-01/mock.json"
	CommonTypes    = "specification/common-types/resource-management/v2/types.json"
	ExamplesFolder = "specification/mock/resource-manager/Microsoft.Mock/stable/2021-01-01/examples"
)

// Frequently used live URLs.
const (
	ThingPath  = "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/thing1"
	WidgetPath = ThingPath + "/widgets/widget1"
	ThingsPath = "/subscriptions/sub1/providers/Microsoft.Mock/things"
)

var files = map[string]string{
	SpecPath:    mockSpec,
	SpecPathNew: mockSpecNew,
	CommonTypes: commonTypes,

	"specification/mock/resource-manager/readme.md": "# Microsoft.Mock\n",

	ExamplesFolder + "/Things_Get.json":                thingsGetExample,
	ExamplesFolder + "/Things_CreateOrUpdate.json":     thingsPutExample,
	ExamplesFolder + "/Things_CreateOrUpdate_Min.json": thingsPutMinExample,
	ExamplesFolder + "/Things_Delete.json":             thingsDeleteExample,
	ExamplesFolder + "/Things_ListBySubscription.json": thingsListExample,
	ExamplesFolder + "/Things_Start.json":              thingsStartExample,
}

// Write creates the tree under a fresh temporary directory and returns its root.
func Write(t testing.TB) string {
	t.Helper()
	return writeFiles(t, files)
}

func writeFiles(t testing.TB, tree map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return root
}

// Path joins a relative tree path onto root.
func Path(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
