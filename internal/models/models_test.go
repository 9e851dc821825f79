package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tabler interface {
	TableName() string
}

func TestTableNames(t *testing.T) {
	cases := map[string]tabler{
		"cv_records":       &CVRecord{},
		"job_descriptions": &JobDescription{},
		"users":            &User{},
	}

	for want, model := range cases {
		assert.Equal(t, want, model.TableName())
	}
}

func TestJobDescription_LiteralTextAndStoredFilename(t *testing.T) {
	text := "  Go developer \n"
	name := "jd_1.pdf"

	jd := &JobDescription{Description: &text, Filename: &name}
	assert.Equal(t, "Go developer", jd.LiteralText())
	assert.Equal(t, "jd_1.pdf", jd.StoredFilename())

	empty := &JobDescription{}
	assert.Equal(t, "", empty.LiteralText())
	assert.Equal(t, "", empty.StoredFilename())
}
