// Package config loads reactor.yaml.
//
// # Configuration File Structure
//
//	seed: 1
//	log:
//	  level: info      # debug, info, warn, error
//	  format: text     # text or json
//	reactive:
//	  max_depth: 1000
//	bench:
//	  iterations: 10
//	  warmup: 2
//	  scenarios: [create, swap]
//	serve:
//	  addr: ":8080"
//	  max_sessions: 100
//	  read_timeout: 5m
//	  write_timeout: 10s
//	  max_message_size: 65536
//	  stylesheets:
//	    - https://cdn.example.com/bootstrap.min.css
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Iterations:", cfg.Bench.Iterations)
package config
