package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/depscout/internal/inventory"
)

func TestRequirementsParser(t *testing.T) {
	content := []byte(`# comment
requests==2.31.0
flask>=2.0
uvicorn[standard]==0.23.2
-r base.txt

django  # pinned elsewhere
`)
	deps, err := (&RequirementsParser{}).Parse("requirements.txt", content)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Dependency{
		{Name: "requests", Version: "2.31.0", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared},
		{Name: "flask", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared},
		{Name: "uvicorn", Version: "0.23.2", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared},
		{Name: "django", SourceFile: "requirements.txt", Type: inventory.DependencyDeclared},
	}, deps)
}

func TestPackageJSONParser(t *testing.T) {
	content := []byte(`{
  "name": "demo",
  "dependencies": {"express": "^4.18.2", "axios": "^1.4.0"},
  "devDependencies": {"jest": "^29.0.0"}
}`)
	deps, err := (&PackageJSONParser{}).Parse("package.json", content)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Dependency{
		{Name: "axios", Version: "^1.4.0", SourceFile: "package.json", Type: inventory.DependencyDeclared},
		{Name: "express", Version: "^4.18.2", SourceFile: "package.json", Type: inventory.DependencyDeclared},
		{Name: "jest", Version: "^29.0.0", SourceFile: "package.json", Type: inventory.DependencyDeclared},
	}, deps)
}

func TestPackageJSONParserRejectsInvalidJSON(t *testing.T) {
	_, err := (&PackageJSONParser{}).Parse("package.json", []byte("{not json"))
	assert.Error(t, err)
}

func TestGoModParser(t *testing.T) {
	content := []byte(`module example.com/demo

go 1.19

require github.com/spf13/cobra v1.6.1

require (
	github.com/hashicorp/go-hclog v1.3.1
	github.com/stretchr/testify v1.8.1 // indirect
)
`)
	deps, err := (&GoModParser{}).Parse("go.mod", content)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Dependency{
		{Name: "github.com/spf13/cobra", Version: "v1.6.1", SourceFile: "go.mod", Type: inventory.DependencyDeclared},
		{Name: "github.com/hashicorp/go-hclog", Version: "v1.3.1", SourceFile: "go.mod", Type: inventory.DependencyDeclared},
		{Name: "github.com/stretchr/testify", Version: "v1.8.1", SourceFile: "go.mod", Type: inventory.DependencyDeclared},
	}, deps)
}

func TestSbtParser(t *testing.T) {
	content := []byte(`name := "demo"

libraryDependencies += "org.example" %% "lib" % "1.0.0"
libraryDependencies += "com.typesafe.akka" % "akka-actor" % "2.6.20"
`)
	deps, err := (&SbtParser{}).Parse("build.sbt", content)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Dependency{
		{Name: "org.example:lib", Version: "1.0.0", SourceFile: "build.sbt", Type: inventory.DependencyDeclared},
		{Name: "com.typesafe.akka:akka-actor", Version: "2.6.20", SourceFile: "build.sbt", Type: inventory.DependencyDeclared},
	}, deps)
}

func TestPomParser(t *testing.T) {
	content := []byte(`<?xml version="1.0"?>
<project>
  <dependencies>
    <dependency>
      <groupId>org.springframework</groupId>
      <artifactId>spring-core</artifactId>
      <version>5.3.20</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
    </dependency>
  </dependencies>
</project>`)
	deps, err := (&PomParser{}).Parse("pom.xml", content)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Dependency{
		{Name: "org.springframework:spring-core", Version: "5.3.20", SourceFile: "pom.xml", Type: inventory.DependencyDeclared},
		{Name: "junit:junit", SourceFile: "pom.xml", Type: inventory.DependencyDeclared},
	}, deps)
}

func TestGemfileParser(t *testing.T) {
	content := []byte(`source "https://rubygems.org"

gem "rails", "7.0.4"
gem 'puma'
`)
	deps, err := (&GemfileParser{}).Parse("Gemfile", content)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Dependency{
		{Name: "rails", Version: "7.0.4", SourceFile: "Gemfile", Type: inventory.DependencyDeclared},
		{Name: "puma", SourceFile: "Gemfile", Type: inventory.DependencyDeclared},
	}, deps)
}

func TestCargoParser(t *testing.T) {
	content := []byte(`[package]
name = "demo"
version = "0.1.0"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = "1.28"

[dev-dependencies]
criterion = "0.5"
`)
	deps, err := (&CargoParser{}).Parse("Cargo.toml", content)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Dependency{
		{Name: "serde", Version: "1.0", SourceFile: "Cargo.toml", Type: inventory.DependencyDeclared},
		{Name: "tokio", Version: "1.28", SourceFile: "Cargo.toml", Type: inventory.DependencyDeclared},
		{Name: "criterion", Version: "0.5", SourceFile: "Cargo.toml", Type: inventory.DependencyDeclared},
	}, deps)
}

func TestRegistryDetection(t *testing.T) {
	r := NewRegistry()

	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "canonical requirements", path: "requirements.txt", expected: "pip"},
		{name: "suffixed requirements", path: "requirements-dev.txt", expected: "pip"},
		{name: "requirements directory", path: "requirements/prod.txt", expected: "pip"},
		{name: "nested package.json", path: "web/package.json", expected: "npm"},
		{name: "go module", path: "go.mod", expected: "gomod"},
		{name: "sbt build", path: "build.sbt", expected: "sbt"},
		{name: "maven", path: "pom.xml", expected: "maven"},
		{name: "bundler", path: "Gemfile", expected: "bundler"},
		{name: "cargo", path: "Cargo.toml", expected: "cargo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parser, ok := r.Find(tc.path)
			require.True(t, ok)
			assert.Equal(t, tc.expected, parser.PackageManager())
		})
	}

	_, ok := r.Find("main.go")
	assert.False(t, ok)
}
