package foods

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/dietplan/internal/nutrition"
)

func TestReadCatalogCSV(t *testing.T) {
	data := `# NAME;CATEGORY;SERVING_SIZE;SERVING_UNIT;CALORIES;PROTEIN;CARBS;FAT
Peito de frango grelhado;carnes;100;g;165;31;0;3.6
Arroz branco cozido; cereais; 100; g; 130; 2.7; 28; 0.3
Banana prata;frutas;1;unidade;89;1.1;22.8;0.3
`
	foods, err := ReadCatalogCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, foods, 3)

	assert.Equal(t, "Peito de frango grelhado", foods[0].Name)
	assert.Equal(t, 31.0, foods[0].Protein)
	assert.Equal(t, "cereais", foods[1].Category)
	assert.Equal(t, 28.0, foods[1].Carbs)
	assert.Equal(t, "unidade", foods[2].ServingUnit)
	assert.False(t, foods[2].IsCustom)
}

func TestReadCatalogCSV_Errors(t *testing.T) {
	_, err := ReadCatalogCSV(strings.NewReader("Aveia;cereais;100;g;394\n"))
	assert.Error(t, err)

	_, err = ReadCatalogCSV(strings.NewReader("Aveia;cereais;100;g;abc;13.9;66.6;8.5\n"))
	assert.ErrorContains(t, err, "line 1: column 5")

	_, err = ReadCatalogCSV(strings.NewReader("Aveia;cereais;0;g;394;13.9;66.6;8.5\n"))
	require.Error(t, err)
	assert.Equal(t, nutrition.KindValidation, nutrition.KindOf(err))

	foods, err := ReadCatalogCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, foods)
}
