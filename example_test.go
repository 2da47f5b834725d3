// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"rivaas.dev/respond"
	"rivaas.dev/respond/problem"
)

func ExampleBuilder_Success() {
	b := respond.MustNew()

	resp, err := b.Success(map[string]any{"id": 1, "name": "John"}, http.StatusOK, "")
	if err != nil {
		panic(err)
	}
	body, _ := resp.Bytes()

	fmt.Println(resp.Status, resp.Header.Get("Content-Type"))
	fmt.Println(string(body))
	// Output:
	// 200 application/json; charset=utf-8
	// {"status":"success","data":{"id":1,"name":"John"}}
}

func ExampleBuilder_Paginated() {
	b := respond.MustNew()

	resp, _ := b.Paginated([]string{"a", "b"}, 25, 1, 5, "")
	body, _ := resp.Bytes()

	fmt.Println(string(body))
	// Output:
	// {"status":"success","meta":{"total":25,"page":1,"per_page":5,"pages":5},"data":["a","b"]}
}

func ExampleBuilder_Problem() {
	b := respond.MustNew()

	resp, _ := b.Problem("https://example.com/probs/out-of-credit", "You do not have enough credit.",
		http.StatusForbidden, "Your current balance is 30, but that costs 50.", "/account/12345/msgs/abc",
		map[string]any{"balance": 30})
	body, _ := resp.Bytes()

	fmt.Println(resp.Header.Get("Content-Type"))
	fmt.Println(string(body))
	// Output:
	// application/problem+json; charset=utf-8
	// {"balance":30,"detail":"Your current balance is 30, but that costs 50.","instance":"/account/12345/msgs/abc","status":403,"title":"You do not have enough credit.","type":"https://example.com/probs/out-of-credit"}
}

func ExampleNegotiation() {
	b := respond.MustNew()

	handler := respond.Negotiation(b)(b.Handle(func(w http.ResponseWriter, r *http.Request) error {
		resp, err := b.For(r).Success("hello", http.StatusOK, "")
		if err != nil {
			return err
		}
		return resp.Write(w)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/xml;q=0.9, application/yaml")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	fmt.Println(rec.Header().Get("Content-Type"))
	fmt.Print(rec.Body.String())
	// Output:
	// application/yaml; charset=utf-8
	// status: success
	// data: hello
}

func ExampleBuilder_Handle() {
	b := respond.MustNew(respond.WithClassifier(
		problem.New(problem.WithErrorRefGenerator(func() string { return "ref-1" })),
	))

	handler := b.Handle(func(http.ResponseWriter, *http.Request) error {
		return fmt.Errorf("user 7: %w", problem.ErrNotFound)
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	fmt.Println(rec.Code, rec.Header().Get("X-Trace-Id"))
	fmt.Println(rec.Body.String())
	// Output:
	// 404 ref-1
	// {"detail":"user 7: not found","error_ref":"ref-1","instance":"/users/7","status":404,"title":"Not Found","type":"https://problem/not-found"}
}

func ExampleConfigFromMap() {
	cfg, err := respond.ConfigFromMap(map[string]any{
		"negotiation.strict_406":  true,
		"pagination.max_per_page": "50",
	})
	if err != nil {
		panic(err)
	}

	fmt.Println(cfg.Negotiation.Strict406, cfg.Pagination.MaxPerPage)

	_, err = respond.ConfigFromMap(map[string]any{"pagination.max_per_page": 0})
	fmt.Println(errors.Is(err, respond.ErrInvalidConfig))
	// Output:
	// true 50
	// true
}
