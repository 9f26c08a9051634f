/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/mixin/apis"
	"dirpx.dev/mixin/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	assert.Equal(t, config.DefaultFieldScope, got.FieldScope)
	assert.Equal(t, apis.FieldScopeAny, got.FieldScope)
	assert.Equal(t, config.DefaultOpenPolicy, got.OpenPolicy)
	assert.Equal(t, config.DefaultMaxDepth, got.MaxDepth)
	assert.Equal(t, config.DefaultExtensions, got.Extensions)
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.NewConfig())
}

func TestOptions(t *testing.T) {
	c := config.NewConfig(
		config.WithFieldScope(apis.FieldScopeFirst),
		config.WithOpenPolicy(apis.OpenStructural),
		config.WithMaxDepth(3),
		config.WithExtensions(false),
	)

	assert.Equal(t, apis.FieldScopeFirst, c.FieldScope)
	assert.Equal(t, apis.OpenStructural, c.OpenPolicy)
	assert.Equal(t, 3, c.MaxDepth)
	assert.False(t, c.Extensions)
}

func TestWithMaxDepth_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(-1))
	assert.Equal(t, config.DefaultMaxDepth, c.MaxDepth)
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithMaxDepth(2),
		config.WithMaxDepth(5),
		config.WithFieldScope(apis.FieldScopeAny),
		config.WithFieldScope(apis.FieldScopeFirst),
	)

	assert.Equal(t, 5, c.MaxDepth)
	assert.Equal(t, apis.FieldScopeFirst, c.FieldScope)
}

func TestParseConfig(t *testing.T) {
	c, err := config.ParseConfig([]byte("fieldScope: first\nopenPolicy: Structural\nmaxDepth: 4\nextensions: false\n"))
	require.NoError(t, err)

	assert.Equal(t, apis.FieldScopeFirst, c.FieldScope)
	assert.Equal(t, apis.OpenStructural, c.OpenPolicy)
	assert.Equal(t, 4, c.MaxDepth)
	assert.False(t, c.Extensions)
}

func TestParseConfig_MissingKeysKeepDefaults(t *testing.T) {
	c, err := config.ParseConfig([]byte("fieldScope: first\n"))
	require.NoError(t, err)

	assert.Equal(t, apis.FieldScopeFirst, c.FieldScope)
	assert.Equal(t, config.DefaultMaxDepth, c.MaxDepth)
	assert.Equal(t, config.DefaultExtensions, c.Extensions)
}

func TestParseConfig_UnknownEnum(t *testing.T) {
	_, err := config.ParseConfig([]byte("fieldScope: everywhere\n"))
	require.Error(t, err)
}
