package foods

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const catalogColumns = 8

// ReadCatalogCSV reads base catalog foods, one per line:
//
//	NAME;CATEGORY;SERVING_SIZE;SERVING_UNIT;CALORIES;PROTEIN;CARBS;FAT
//
// Lines starting with # are skipped.
func ReadCatalogCSV(r io.Reader) ([]Food, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.Comment = '#'
	reader.FieldsPerRecord = catalogColumns
	reader.TrimLeadingSpace = true

	var foods []Food
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		food, err := foodFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		foods = append(foods, food)
	}

	log.Debugf("catalog CSV read %d foods", len(foods))
	return foods, nil
}

func foodFromRecord(record []string) (Food, error) {
	numbers := make([]float64, 0, 5)
	for _, i := range []int{2, 4, 5, 6, 7} {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return Food{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		numbers = append(numbers, v)
	}

	food := Food{
		Name:        strings.TrimSpace(record[0]),
		Category:    strings.TrimSpace(record[1]),
		ServingSize: numbers[0],
		ServingUnit: strings.TrimSpace(record[3]),
		Calories:    numbers[1],
		Protein:     numbers[2],
		Carbs:       numbers[3],
		Fat:         numbers[4],
	}
	if err := food.Validate(); err != nil {
		return Food{}, err
	}
	return food, nil
}
