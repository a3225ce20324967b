package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/depscout/internal/inventory"
)

func importNames(deps []inventory.Dependency) []string {
	names := make([]string, 0, len(deps))
	for _, dep := range deps {
		names = append(names, dep.Name)
	}
	return names
}

func TestPythonImportAnalyzer(t *testing.T) {
	content := []byte(`import os
import requests
import numpy.linalg
from flask import Flask
from collections import defaultdict
import requests
`)
	deps, err := (&PythonImportAnalyzer{}).Analyze("app.py", content)
	require.NoError(t, err)

	// stdlib modules are filtered and duplicates collapse to one entry
	assert.Equal(t, []string{"requests", "numpy", "flask"}, importNames(deps))
	for _, dep := range deps {
		assert.Equal(t, inventory.DependencyImported, dep.Type)
		assert.Equal(t, "app.py", dep.SourceFile)
	}
}

func TestJavaScriptImportAnalyzer(t *testing.T) {
	content := []byte(`import express from 'express';
import { useState } from "react";
import utils from './utils';
import fs from 'node:fs';
const axios = require('axios');
const plot = require('@observablehq/plot');
`)
	deps, err := (&JavaScriptImportAnalyzer{}).Analyze("index.js", content)
	require.NoError(t, err)

	assert.Equal(t, []string{"express", "react", "axios", "@observablehq/plot"}, importNames(deps))
}

func TestGoImportAnalyzer(t *testing.T) {
	content := []byte(`package main

import "fmt"

import (
	"os"
	"github.com/spf13/cobra"
	hclog "github.com/hashicorp/go-hclog"
)
`)
	deps, err := (&GoImportAnalyzer{}).Analyze("main.go", content)
	require.NoError(t, err)

	assert.Equal(t, []string{"github.com/spf13/cobra", "github.com/hashicorp/go-hclog"}, importNames(deps))
}
