package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/source"
	"github.com/advisordesk/advisordesk/internal/source/file"
)

func writeFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
}

func TestSource_Transactions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "transactions.json", []byte(`[
		{"id": "t1", "type": "Buy", "symbol": "ACME", "total": 500, "date": "2024-05-01T00:00:00Z", "status": "Completed"},
		{"id": "t2", "type": "Deposit", "total": 1000, "date": "2024-05-02T00:00:00Z", "status": "Pending"}
	]`))

	src := file.New(dir)

	txs, err := src.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, 500.0, txs[0].Total)
}

func TestSource_MissingFileIsUnavailable(t *testing.T) {
	src := file.New(t.TempDir())

	_, err := src.Assets(context.Background())
	require.ErrorIs(t, err, source.ErrUnavailable)

	_, err = src.Market(context.Background())
	require.ErrorIs(t, err, source.ErrUnavailable)

	_, err = src.Leads(context.Background())
	require.ErrorIs(t, err, source.ErrUnavailable)
}

func TestSource_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "assets.json", []byte(`{"not": "a list"}`))

	src := file.New(dir)

	_, err := src.Assets(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, source.ErrUnavailable, "a present but broken file is not an availability failure")
}

func TestSource_LeadsPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leads.json", []byte(`[{"id": "from-json", "company": "Acme"}]`))
	writeFile(t, dir, "leads.csv", []byte("id,company\nfrom-csv,Beta\n"))

	src := file.New(dir)

	leads, err := src.Leads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "from-json", leads[0].ID)
}

func TestSource_LeadsFromCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leads.csv", []byte(
		"id,company,contactName,contactEmail,source,status,potentialValue,createdDate,scheme\n"+
			"l1,Sharma Holdings,Priya Sharma,priya@sharma.in,Website,New,50000,2024-04-02,HDFC Balanced Fund\n"+
			",Gupta Traders,Amit Gupta,amit@gupta.com,Referral,Qualified,120000,2024-04-06T10:00:00Z,\n"))

	src := file.New(dir)

	leads, err := src.Leads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, "l1", leads[0].ID)
	assert.Equal(t, lead.ChannelWebsite, leads[0].Source)
	assert.Equal(t, 50000.0, leads[0].PotentialValue)
	assert.Equal(t, "HDFC Balanced Fund", leads[0].Scheme)

	assert.NotEmpty(t, leads[1].ID, "rows without an id get a generated one")
	assert.Equal(t, lead.StatusQualified, leads[1].Status)
	assert.Equal(t, 10, leads[1].CreatedDate.Hour())
}

func TestSource_LeadsFromWindows1252CSV(t *testing.T) {
	dir := t.TempDir()

	// "Müller Vermögen" with Windows-1252 single-byte umlauts.
	row := append([]byte("id,company\nl1,M"), 0xFC)
	row = append(row, []byte("ller Verm")...)
	row = append(row, 0xF6)
	row = append(row, []byte("gen\n")...)
	writeFile(t, dir, "leads.csv", row)

	src := file.New(dir)

	leads, err := src.Leads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Müller Vermögen", leads[0].Company)
}

func TestSource_LeadsFromUTF8BOMCSV(t *testing.T) {
	dir := t.TempDir()

	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,company\nl1,Acme\n")...)
	writeFile(t, dir, "leads.csv", content)

	src := file.New(dir)

	leads, err := src.Leads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "l1", leads[0].ID)
}

func TestSource_CSVBadValue(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leads.csv", []byte("id,potentialValue\nl1,lots\n"))

	src := file.New(dir)

	_, err := src.Leads(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
