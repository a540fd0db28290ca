package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumin/bigac"
)

func TestDistanceMatrix(t *testing.T) {
	dir, err := ioutil.TempDir("", "bigac.TestDistanceMatrix")
	if err != nil {
		t.Fatalf("%v", err)
	}
	defer os.RemoveAll(dir)

	files := map[string]string{
		"a": strings.Repeat("the people, by the people, for the people ", 4),
		"b": strings.Repeat("the people, for the people, by the people ", 4),
		"c": strings.Repeat("0123456789QWERTYUIOPASDFGHJKLZXCVBNM", 4),
	}
	for name, s := range files {
		if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(s), 0644); err != nil {
			t.Fatalf("%v", err)
		}
	}
	data, err := listFiles(dir)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(data) != 3 {
		t.Fatalf("%v", data)
	}

	codec, err := bigac.NewCodec(bigac.Config{})
	if err != nil {
		t.Fatalf("%v", err)
	}
	mat, err := distanceMatrix(codec, data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	// ReadDir sorts by name, so the pairs are a-b, a-c, b-c.
	if len(mat) != 3 {
		t.Fatalf("%v", mat)
	}
	if mat[0] >= mat[1] || mat[0] >= mat[2] {
		t.Errorf("similar files are not closest: %v", mat)
	}
}
