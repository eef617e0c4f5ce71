package mockserver

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestParseParamsKeepsRepeatedValuesInOrder(t *testing.T) {
	params, err := parseParams("a=1&a=2&b=3")
	require.NoError(t, err)
	assert.Equal(t, url.Values{"a": {"1", "2"}, "b": {"3"}}, params)
}

func TestParseParamsDecodesOnce(t *testing.T) {
	params, err := parseParams("buyer=https%3A%2F%2Flocalhost%3A8081&x=%2541")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://localhost:8081"}, params["buyer"])
	assert.Equal(t, []string{"%41"}, params["x"])
}

func TestParseParamsKeepsValidPairsWhenMalformed(t *testing.T) {
	params, err := parseParams("a=1&b=%zz&c=3")
	assert.Error(t, err)
	assert.Equal(t, url.Values{"a": {"1"}, "c": {"3"}}, params)
}

func TestParseParamsEmpty(t *testing.T) {
	params, err := parseParams("")
	require.NoError(t, err)
	assert.NotNil(t, params)
	assert.Len(t, params, 0)
}

func TestRequestParamAccessors(t *testing.T) {
	r := Request{path: "/reportWin", params: url.Values{"name": {"winner", "loser"}}}

	assert.Equal(t, []string{"winner", "loser"}, r.Param("name"))
	assert.Nil(t, r.Param("bid"))

	first, ok := r.FirstParam("name")
	assert.True(t, ok)
	assert.Equal(t, "winner", first)

	_, ok = r.FirstParam("bid")
	assert.False(t, ok)
}

func TestRequestAccessorsReturnCopies(t *testing.T) {
	r := Request{params: url.Values{"a": {"1"}}, body: []byte("xyz")}

	r.Params()["a"][0] = "changed"
	r.Param("a")[0] = "changed"
	r.Body()[0] = 'X'

	assert.Equal(t, "1", r.params["a"][0])
	assert.Equal(t, "xyz", string(r.body))
}

func TestFirstJSONParam(t *testing.T) {
	r := Request{params: url.Values{
		"signals": {`{"browserSignals":{"bid":15,"interestGroupName":"winner"}}`},
		"broken":  {`{not json`},
	}}

	signals := r.FirstJSONParam("signals")
	assert.Equal(t, ldvalue.ObjectType, signals.Type())
	assert.Equal(t, 15, signals.GetByKey("browserSignals").GetByKey("bid").IntValue())
	assert.Equal(t, "winner", signals.GetByKey("browserSignals").GetByKey("interestGroupName").StringValue())

	assert.True(t, r.FirstJSONParam("broken").IsNull())
	assert.True(t, r.FirstJSONParam("missing").IsNull())
}

func TestRequestBody(t *testing.T) {
	assert.False(t, Request{}.HasBody())
	assert.Nil(t, Request{}.Body())

	empty := Request{body: []byte{}}
	assert.True(t, empty.HasBody())
	assert.Equal(t, []byte{}, empty.Body())
}
