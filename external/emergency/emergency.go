package emergency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/medi-route/triage-api/consts"
	"github.com/medi-route/triage-api/share/upstream"
)

const (
	logPrefix  = "emergency"
	defaultURL = "http://apis.data.go.kr/B552657/ErmctInfoInqireService"

	bedsPath     = "/getEmrrmRltmUsefulSckbdInfoInqire"
	resultCodeOK = "00"

	DefaultPageNo    = 1
	DefaultNumOfRows = 10
)

var (
	ErrEmptyServiceKey  = errors.New("empty emergency service key")
	ErrUnexpectedStatus = errors.New("unexpected emergency info response status")
	ErrResultCode       = errors.New("emergency info result code not ok")
)

// Item is one emergency room entry, passed through as the portal sends it.
type Item map[string]interface{}

// Neighbors maps a province and a district to the districts queried in
// its place, for districts the portal has no rows for.
type Neighbors map[string]map[string][]string

// Lookup returns the substitute districts of a province and district.
func (n Neighbors) Lookup(stage1, stage2 string) ([]string, bool) {
	districts, ok := n[stage1]
	if !ok {
		return nil, false
	}
	neighbors, ok := districts[stage2]
	return neighbors, ok && len(neighbors) > 0
}

// LoadNeighbors reads a neighbor table from a yaml file.
func LoadNeighbors(path string) (Neighbors, error) {
	d, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var n Neighbors
	if err := yaml.Unmarshal(d, &n); err != nil {
		return nil, err
	}
	return n, nil
}

// EmergencyInfo - interface to the real-time emergency room bed service
type EmergencyInfo interface {
	Get(ctx context.Context, stage1, stage2 string, pageNo, numOfRows int) ([]Item, error)
}

type emergencyInfo struct {
	url        string
	serviceKey string
	neighbors  Neighbors
	client     *http.Client
	caller     *upstream.Caller
}

type jsonResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// Get lists the emergency rooms of a province and district. Districts in
// the neighbor table are replaced by their neighbors. A district whose
// lookup fails contributes no rows.
func (e *emergencyInfo) Get(ctx context.Context, stage1, stage2 string, pageNo, numOfRows int) ([]Item, error) {
	if pageNo <= 0 {
		pageNo = DefaultPageNo
	}
	if numOfRows <= 0 {
		numOfRows = DefaultNumOfRows
	}

	stage1 = consts.KrProvince(stage1)
	districts := []string{stage2}
	if neighbors, ok := e.neighbors.Lookup(stage1, stage2); ok {
		districts = neighbors
	}

	items := make([]Item, 0)
	for _, district := range districts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := e.fetch(ctx, stage1, district, pageNo, numOfRows)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"stage1": stage1,
				"stage2": district,
			}).WithError(err).Error("query emergency info")
			continue
		}
		items = append(items, result...)
	}

	return items, nil
}

func (e *emergencyInfo) fetch(ctx context.Context, stage1, stage2 string, pageNo, numOfRows int) ([]Item, error) {
	if e.serviceKey == "" {
		return nil, ErrEmptyServiceKey
	}

	q := url.Values{}
	q.Set("serviceKey", e.serviceKey)
	q.Set("STAGE1", stage1)
	q.Set("STAGE2", stage2)
	q.Set("pageNo", strconv.Itoa(pageNo))
	q.Set("numOfRows", strconv.Itoa(numOfRows))
	q.Set("_type", "json")

	var r jsonResponse
	if err := e.caller.DoIdempotent(ctx, "emergency", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url+bedsPath+"?"+q.Encode(), nil)
		if err != nil {
			return upstream.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		d, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
			if resp.StatusCode < http.StatusInternalServerError {
				return upstream.Permanent(err)
			}
			return err
		}

		if err := json.Unmarshal(d, &r); err != nil {
			return upstream.Permanent(err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if r.Response.Header.ResultCode != resultCodeOK {
		return nil, fmt.Errorf("%w: %s %s", ErrResultCode, r.Response.Header.ResultCode, r.Response.Header.ResultMsg)
	}

	return decodeItems(r.Response.Body.Items)
}

// decodeItems accepts the portal's three shapes of items: an empty string,
// a single object, or a list of objects.
func decodeItems(raw json.RawMessage) ([]Item, error) {
	if len(raw) == 0 || string(raw) == `""` || string(raw) == "null" {
		return nil, nil
	}

	var container struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &container); err != nil {
		return nil, err
	}

	item := strings.TrimSpace(string(container.Item))
	switch {
	case item == "" || item == "null":
		return nil, nil
	case strings.HasPrefix(item, "["):
		var items []Item
		if err := json.Unmarshal(container.Item, &items); err != nil {
			return nil, err
		}
		return items, nil
	default:
		var single Item
		if err := json.Unmarshal(container.Item, &single); err != nil {
			return nil, err
		}
		return []Item{single}, nil
	}
}

// New - new EmergencyInfo. An empty url uses the public data portal.
func New(baseURL, serviceKey string, neighbors Neighbors, client *http.Client, caller *upstream.Caller) EmergencyInfo {
	u := defaultURL
	if baseURL != "" {
		u = strings.TrimRight(baseURL, "/")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if caller == nil {
		caller = upstream.NewCaller(upstream.Config{}, nil)
	}

	return &emergencyInfo{
		url:        u,
		serviceKey: serviceKey,
		neighbors:  neighbors,
		client:     client,
		caller:     caller,
	}
}
