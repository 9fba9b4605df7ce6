// Copyright 2025 reclens Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reclens/reclens/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRatingsCSV(t *testing.T) {
	path := writeFile(t, "u.data",
		"1\t11\t5\t874965758\n"+
			"1\t12\t1\t876893171\n"+
			"2\t11\t4\t878542960\n")
	set, err := LoadRatingsCSV(path, "\t", false, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Count())
	assert.Equal(t, 2, set.UserCount())
	assert.Equal(t, 2, set.ItemCount())
	userId, itemId, rating := set.Get(0)
	assert.Equal(t, 1, userId)
	assert.Equal(t, 11, itemId)
	assert.Equal(t, 5.0, rating)
}

func TestLoadRatingsCSV_DoubleColon(t *testing.T) {
	path := writeFile(t, "ratings.dat",
		"1::11::5::978300760\n"+
			"2::12::3.5::978302109\n")
	set, err := LoadRatingsCSV(path, "::", false, 0.5, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Count())
	_, _, rating := set.Get(1)
	assert.Equal(t, 3.5, rating)
}

func TestLoadRatingsCSV_Header(t *testing.T) {
	path := writeFile(t, "ratings.csv",
		"userId,movieId,rating,timestamp\n"+
			"1,11,4.0,964982703\n")
	set, err := LoadRatingsCSV(path, ",", true, 0.5, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Count())
}

func TestLoadRatingsCSV_SkipsMalformed(t *testing.T) {
	path := writeFile(t, "u.data",
		"1\t11\t5\n"+
			"oops\n"+
			"2\tnot-an-id\t3\n"+
			"\n"+
			"2\t12\t4\n")
	set, err := LoadRatingsCSV(path, "\t", false, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Count())
}

func TestLoadRatingsCSV_OutOfRange(t *testing.T) {
	path := writeFile(t, "u.data", "1\t11\t6\n")
	_, err := LoadRatingsCSV(path, "\t", false, 1, 5)
	assert.ErrorIs(t, err, model.ErrInvalidRating)
}

func TestLoadRatingsCSV_Missing(t *testing.T) {
	_, err := LoadRatingsCSV(filepath.Join(t.TempDir(), "none"), "\t", false, 1, 5)
	assert.Error(t, err)
}

func TestLoadItemsCSV(t *testing.T) {
	path := writeFile(t, "movies.dat",
		"11::Toy Story (1995)::Animation|Children's|Comedy\n"+
			"12::GoldenEye (1995)::Action|Adventure|Thriller\n"+
			"13::Nixon (1995)\n")
	catalog, err := LoadItemsCSV(path, "::", false)
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())
	item, exist := catalog.Get(11)
	require.True(t, exist)
	assert.Equal(t, "Toy Story (1995)", item.Title)
	assert.Equal(t, []string{"Animation", "Children's", "Comedy"}, item.Genres)
	item, exist = catalog.Get(13)
	require.True(t, exist)
	assert.Empty(t, item.Genres)
	_, exist = catalog.Get(42)
	assert.False(t, exist)
}
