package ioannotate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/protquant/quantpipe/pkg/config"
	"github.com/protquant/quantpipe/pkg/lifecycle"
	"github.com/protquant/quantpipe/pkg/tables"
)

// Field names of the id-mapping TSV response.
const (
	fromField  = "From"
	genesField = "Gene Names"
)

// resultsPageSize is the page size requested from the results
// endpoint; further pages arrive as chunks via Link headers.
const resultsPageSize = 500

type uniprotResolver struct {
	endpoint     string
	batchSize    int
	pollInterval time.Duration
	timeout      time.Duration
	client       *http.Client
}

// NewUniprotResolver returns a GeneResolver backed by the UniProt
// id-mapping REST service. One logical Resolve call submits a batch
// job, polls it, and follows paginated result chunks.
func NewUniprotResolver(cfg *config.Config) lifecycle.GeneResolver {
	return &uniprotResolver{
		endpoint:     strings.TrimRight(cfg.Annotation.Endpoint, "/"),
		batchSize:    cfg.Annotation.BatchSize,
		pollInterval: time.Duration(cfg.Annotation.PollIntervalSec) * time.Second,
		timeout:      time.Duration(cfg.Annotation.TimeoutSec) * time.Second,
		client:       &http.Client{Timeout: 60 * time.Second},
	}
}

// Available reports whether the service endpoint is configured.
func (r *uniprotResolver) Available() bool {
	return r.endpoint != ""
}

// Resolve maps accessions to gene-name tokens. Accessions absent from
// the response are simply missing from the returned map.
func (r *uniprotResolver) Resolve(
	ctx context.Context,
	accessions []string,
) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	genes := make(map[string]string)
	for chunk := range slices.Chunk(accessions, r.batchSize) {
		if err := r.resolveBatch(ctx, chunk, genes); err != nil {
			return genes, err
		}
	}
	return genes, nil
}

func (r *uniprotResolver) resolveBatch(
	ctx context.Context,
	accessions []string,
	genes map[string]string,
) error {
	jobID, err := r.submit(ctx, accessions)
	if err != nil {
		return err
	}

	if err := r.waitFinished(ctx, jobID); err != nil {
		return err
	}

	return r.fetchResults(ctx, jobID, genes)
}

// submit starts an id-mapping job for all accessions at once.
func (r *uniprotResolver) submit(
	ctx context.Context,
	accessions []string,
) (string, error) {
	form := url.Values{
		"from": {"UniProtKB_AC-ID"},
		"to":   {"UniProtKB"},
		"ids":  {strings.Join(accessions, ",")},
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, r.endpoint+"/run",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("id-mapping submit: status %d",
			resp.StatusCode)
	}

	var body struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.JobID == "" {
		return "", fmt.Errorf("id-mapping submit: empty job id")
	}
	return body.JobID, nil
}

// waitFinished polls the job until the service reports it done.
func (r *uniprotResolver) waitFinished(
	ctx context.Context,
	jobID string,
) error {
	for {
		status, err := r.jobStatus(ctx, jobID)
		if err != nil {
			return err
		}
		switch status {
		case "FINISHED":
			return nil
		case "ERROR":
			return fmt.Errorf("id-mapping job %s failed", jobID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.pollInterval):
		}
	}
}

func (r *uniprotResolver) jobStatus(
	ctx context.Context,
	jobID string,
) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, r.endpoint+"/status/"+jobID, nil,
	)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("id-mapping status: status %d",
			resp.StatusCode)
	}

	var body struct {
		JobStatus string          `json:"jobStatus"`
		Results   json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	// Some deployments answer the status poll with the results
	// themselves once the job is done.
	if body.JobStatus == "" && len(body.Results) > 0 {
		return "FINISHED", nil
	}
	return body.JobStatus, nil
}

// fetchResults streams the job's TSV result, one chunk per page,
// following Link headers until no next page remains.
func (r *uniprotResolver) fetchResults(
	ctx context.Context,
	jobID string,
	genes map[string]string,
) error {
	next := fmt.Sprintf(
		"%s/results/%s?format=tsv&fields=gene_names&size=%d",
		r.endpoint, jobID, resultsPageSize,
	)

	for next != "" {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodGet, next, nil,
		)
		if err != nil {
			return err
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("id-mapping results: status %d",
				resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return err
		}

		parseChunk(string(body), genes)
		next = nextLink(resp.Header.Get("Link"))
	}
	return nil
}

// parseChunk reads one tabular result block keyed by the original
// accession. Only the first whitespace-delimited token of the
// gene-name field is kept per accession.
func parseChunk(chunk string, genes map[string]string) {
	lines := strings.Split(chunk, "\n")
	if len(lines) == 0 {
		return
	}

	header := strings.Split(lines[0], "\t")
	fromIdx := tables.ColumnIndex(header, fromField, -1)
	genesIdx := tables.ColumnIndex(header, genesField, -1)
	if fromIdx < 0 || genesIdx < 0 {
		return
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= fromIdx || len(fields) <= genesIdx {
			continue
		}
		tokens := strings.Fields(fields[genesIdx])
		if len(tokens) == 0 {
			continue
		}
		genes[fields[fromIdx]] = tokens[0]
	}
}

// nextLink extracts the rel="next" target from a Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}
