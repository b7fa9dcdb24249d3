package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/camtrap/internal/domain"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locale = "zh-TW"

type fixture struct {
	project   uuid.UUID
	area      *domain.StudyArea
	subArea   *domain.StudyArea
	camera    *domain.CameraLocation
	muntjac   *domain.Species
	weather   *domain.DataField
	seenAt    *domain.DataField
	note      *domain.DataField
	sunny     uuid.UUID
	fields    []*domain.DataField
	header    []string
	knownList []*domain.Species
}

func newFixture() *fixture {
	f := &fixture{project: uuid.New(), sunny: uuid.New()}

	f.area = &domain.StudyArea{ID: uuid.New(), ProjectID: f.project, Title: domain.LocalizedText{locale: "臺東"}}
	f.subArea = &domain.StudyArea{ID: uuid.New(), ProjectID: f.project, ParentID: &f.area.ID, Title: domain.LocalizedText{locale: "關山"}}
	f.camera = &domain.CameraLocation{ID: uuid.New(), ProjectID: f.project, StudyAreaID: f.area.ID, Name: "PT01"}
	f.muntjac = &domain.Species{ID: uuid.New(), ProjectID: f.project, Title: domain.LocalizedText{locale: "山羌"}, Index: 0}

	f.weather = &domain.DataField{
		ID:         uuid.New(),
		WidgetType: domain.WidgetTypeSelect,
		Title:      domain.LocalizedText{locale: "天氣"},
		Options:    []domain.DataFieldOption{{ID: f.sunny, Title: domain.LocalizedText{locale: "晴"}}},
	}
	f.seenAt = &domain.DataField{ID: uuid.New(), WidgetType: domain.WidgetTypeTime, Title: domain.LocalizedText{locale: "發現時間"}}
	f.note = &domain.DataField{ID: uuid.New(), WidgetType: domain.WidgetTypeText, Title: domain.LocalizedText{locale: "備註"}}

	for _, code := range domain.DefaultSystemCodes {
		f.fields = append(f.fields, &domain.DataField{ID: uuid.New(), SystemCode: code})
	}
	f.fields = append(f.fields, f.weather, f.seenAt, f.note)
	f.header = []string{"樣區", "子樣區", "相機位置", "檔名", "拍攝時間", "物種", "天氣", "發現時間", "備註"}
	f.knownList = []*domain.Species{f.muntjac}

	return f
}

func (f *fixture) input(rows ...[]string) Input {
	return Input{
		ProjectID:       f.project,
		Fields:          f.fields,
		StudyAreas:      []*domain.StudyArea{f.area, f.subArea},
		CameraLocations: []*domain.CameraLocation{f.camera},
		Species:         f.knownList,
		Rows:            append([][]string{f.header}, rows...),
		Timezone:        480,
		Locale:          locale,
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2023-01-01 08:00:00", 480)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("2023-01-01 08:00:00", -60)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC), got)

	_, err = ParseTime("2023/01/01 08:00", 480)
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	f := newFixture()

	res, err := Convert(f.input(
		[]string{"臺東", "", "PT01", "IMG_0001.JPG", "2023-01-01 08:00:00", "山羌", "晴", "2023-01-01 07:55:00", "雄性"},
		[]string{"臺東", "關山", "PT01", "IMG_0002.JPG", "2023-01-01 09:00:00", "", "", "", ""},
	))
	require.NoError(t, err)
	require.Len(t, res.Annotations, 2)
	assert.Empty(t, res.NewSpecies)
	assert.Zero(t, res.Duplicates)

	first := res.Annotations[0]
	assert.Equal(t, f.project, first.ProjectID)
	assert.Equal(t, f.area.ID, first.StudyAreaID)
	assert.Equal(t, f.camera.ID, first.CameraLocationID)
	require.NotNil(t, first.SpeciesID)
	assert.Equal(t, f.muntjac.ID, *first.SpeciesID)
	assert.Equal(t, "IMG_0001.JPG", first.Filename)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), first.Time)
	assert.Empty(t, first.Failures)
	assert.Equal(t, domain.AnnotationStateActive, first.State)
	assert.Len(t, first.RawData, 9)

	require.Len(t, first.Fields, 3)
	assert.Equal(t, f.weather.ID, first.Fields[0].DataFieldID)
	require.NotNil(t, first.Fields[0].Value.SelectID)
	assert.Equal(t, f.sunny, *first.Fields[0].Value.SelectID)
	assert.Equal(t, "2022-12-31T23:55:00Z", first.Fields[1].Value.Text)
	assert.Equal(t, "雄性", first.Fields[2].Value.Text)

	second := res.Annotations[1]
	assert.Equal(t, f.subArea.ID, second.StudyAreaID, "sub-area cell wins when present")
	assert.Nil(t, second.SpeciesID)
	assert.Nil(t, second.Fields[0].Value.SelectID)
}

func TestConvertDropsDuplicates(t *testing.T) {
	f := newFixture()

	res, err := Convert(f.input(
		[]string{"臺東", "", "PT01", "IMG_0001.JPG", "2023-01-01 08:00:00", "山羌"},
		[]string{"臺東", "", "PT01", "IMG_0001.JPG", "2023-01-01 08:00:00", "山羌"},
		// другой вид, всё равно дубликат
		[]string{"臺東", "", "PT01", "IMG_0001.JPG", "2023-01-01 08:00:00", "水鹿"},
		[]string{"臺東", "", "PT01", "IMG_0001.JPG", "2023-01-01 08:00:01", "山羌"},
	))
	require.NoError(t, err)

	assert.Len(t, res.Annotations, 2)
	assert.Equal(t, 2, res.Duplicates)
	// вид из отброшенной строки всё равно создаётся
	require.Len(t, res.NewSpecies, 1)
	assert.Equal(t, "水鹿", res.NewSpecies[0].Title.Get(locale))
}

func TestConvertMissingRequiredField(t *testing.T) {
	f := newFixture()

	_, err := Convert(f.input(
		[]string{"臺東", "", "PT01", "IMG_0001.JPG", "2023-01-01 08:00:00", "山羌"},
		[]string{"臺東", "", "", "IMG_0002.JPG", "2023-01-01 08:10:00", "山羌"},
	))
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrValidation))

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, []string{"cameraLocation"}, rowErr.Missing)
	assert.Equal(t, "Missing required fields at row 2: cameraLocation.", err.Error())
}

func TestConvertRejectsUnknownReferences(t *testing.T) {
	f := newFixture()

	_, err := Convert(f.input(
		[]string{"花蓮", "", "PT99", "", "01/01/2023", "山羌"},
	))

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 1, rowErr.Row)
	assert.Equal(t, []string{"studyArea", "cameraLocation", "fileName", "time"}, rowErr.Missing)
}

func TestConvertCreatesSpecies(t *testing.T) {
	f := newFixture()

	res, err := Convert(f.input(
		[]string{"臺東", "", "PT01", "IMG_0001.JPG", "2023-01-01 08:00:00", "水鹿"},
		[]string{"臺東", "", "PT01", "IMG_0002.JPG", "2023-01-01 08:05:00", "水鹿"},
		[]string{"臺東", "", "PT01", "IMG_0003.JPG", "2023-01-01 08:10:00", "白鼻心"},
		[]string{"臺東", "", "PT01", "IMG_0004.JPG", "2023-01-01 08:15:00", "山羌"},
	))
	require.NoError(t, err)
	require.Len(t, res.NewSpecies, 2)

	sambar, civet := res.NewSpecies[0], res.NewSpecies[1]
	assert.Equal(t, "水鹿", sambar.Title.Get(locale))
	assert.Equal(t, 1, sambar.Index)
	assert.Equal(t, "白鼻心", civet.Title.Get(locale))
	assert.Equal(t, 2, civet.Index)
	assert.Equal(t, f.project, civet.ProjectID)

	require.Len(t, res.Annotations, 4)
	assert.Equal(t, sambar.ID, *res.Annotations[0].SpeciesID)
	assert.Equal(t, sambar.ID, *res.Annotations[1].SpeciesID)
	assert.Equal(t, civet.ID, *res.Annotations[2].SpeciesID)
	for _, a := range res.Annotations[:3] {
		assert.Equal(t, []domain.FailureType{domain.FailureNewSpecies}, a.Failures)
	}
	assert.Empty(t, res.Annotations[3].Failures)
}

func TestConvertHeaderOnly(t *testing.T) {
	f := newFixture()

	res, err := Convert(f.input())
	require.NoError(t, err)
	assert.Empty(t, res.Annotations)
	assert.Empty(t, res.NewSpecies)
}
