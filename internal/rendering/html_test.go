package rendering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya/resume-builder/internal/types"
)

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(sampleProfile())
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Priya Raman</h1>")
	assert.Contains(t, out, "priya@example.com")
	assert.Contains(t, out, "May 2022 – Present")
	assert.Contains(t, out, "<li>Led the platform team</li>")
	assert.Contains(t, out, "Go, PostgreSQL")
}

func TestRenderHTML_EscapesUserInput(t *testing.T) {
	p := sampleProfile()
	p.Contact.Name = `<script>alert("x")</script>`

	out, err := RenderHTML(p)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTML_OmitsEmptySections(t *testing.T) {
	p := &types.ResumeProfile{
		UserID: uuid.New(),
		Skills: []types.ProfileItem[types.Skill]{
			{ID: uuid.New(), Payload: types.Skill{Name: "Go"}},
		},
	}

	out, err := RenderHTML(p)
	require.NoError(t, err)

	assert.Contains(t, out, "<h2>Skills</h2>")
	assert.NotContains(t, out, "<h2>Experience</h2>")
	assert.NotContains(t, out, "<h1>")
}

func TestRenderHTML_NilProfile(t *testing.T) {
	_, err := RenderHTML(nil)
	var rerr *RenderError
	assert.ErrorAs(t, err, &rerr)
}

func TestHTMLDates(t *testing.T) {
	may := types.DateParts{Month: "May", Year: "2022"}

	assert.Equal(t, "May 2022 – Present", htmlDates(may, types.DateParts{}, true))
	assert.Equal(t, "May 2022", htmlDates(may, types.DateParts{}, false))
	assert.Equal(t, "", htmlDates(types.DateParts{}, types.DateParts{}, false))
}
