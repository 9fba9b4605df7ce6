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

// Package dataset loads rating files and item catalogs in the MovieLens
// family of formats: one record per line, fields joined by a separator such
// as "\t" or "::".
package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/reclens/reclens/base/log"
	"github.com/reclens/reclens/model"
	"go.uber.org/zap"
)

// LoadRatingsCSV reads a rating file into a store. Each line carries at
// least userId, itemId and rating; extra fields such as timestamps are
// ignored. Malformed lines are skipped with a warning, while out-of-range
// ratings abort the load.
func LoadRatingsCSV(path, sep string, hasHeader bool, minRating, maxRating float64) (*model.DataSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	set := model.NewDataSet(minRating, maxRating)
	lineNumber := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++
		if hasHeader && lineNumber == 1 {
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, sep)
		if len(fields) < 3 {
			log.Logger().Warn("skip malformed line",
				zap.String("path", path), zap.Int("line", lineNumber))
			continue
		}
		userId, err := strconv.Atoi(fields[0])
		if err != nil {
			log.Logger().Warn("skip malformed line",
				zap.String("path", path), zap.Int("line", lineNumber), zap.Error(err))
			continue
		}
		itemId, err := strconv.Atoi(fields[1])
		if err != nil {
			log.Logger().Warn("skip malformed line",
				zap.String("path", path), zap.Int("line", lineNumber), zap.Error(err))
			continue
		}
		rating, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			log.Logger().Warn("skip malformed line",
				zap.String("path", path), zap.Int("line", lineNumber), zap.Error(err))
			continue
		}
		if err = set.Ingest(userId, itemId, rating); err != nil {
			return nil, errors.Annotatef(err, "%s:%d", path, lineNumber)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	return set, nil
}

// Item is a catalog entry.
type Item struct {
	ItemId int
	Title  string
	Genres []string
}

// Catalog maps item IDs to metadata.
type Catalog struct {
	items map[int]Item
}

// Get looks up an item by ID. A nil catalog knows no items.
func (catalog *Catalog) Get(itemId int) (Item, bool) {
	if catalog == nil {
		return Item{}, false
	}
	item, exist := catalog.items[itemId]
	return item, exist
}

// Len returns the number of cataloged items.
func (catalog *Catalog) Len() int {
	if catalog == nil {
		return 0
	}
	return len(catalog.items)
}

// LoadItemsCSV reads an item catalog. Each line carries itemId, title and an
// optional '|'-separated genre list. Only the first two separators split the
// line, so the genre field is taken verbatim.
func LoadItemsCSV(path, sep string, hasHeader bool) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	catalog := &Catalog{items: make(map[int]Item)}
	lineNumber := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++
		if hasHeader && lineNumber == 1 {
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, sep, 3)
		if len(fields) < 2 {
			log.Logger().Warn("skip malformed line",
				zap.String("path", path), zap.Int("line", lineNumber))
			continue
		}
		itemId, err := strconv.Atoi(fields[0])
		if err != nil {
			log.Logger().Warn("skip malformed line",
				zap.String("path", path), zap.Int("line", lineNumber), zap.Error(err))
			continue
		}
		item := Item{ItemId: itemId, Title: fields[1]}
		if len(fields) == 3 && fields[2] != "" {
			item.Genres = strings.Split(fields[2], "|")
		}
		catalog.items[itemId] = item
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	return catalog, nil
}
