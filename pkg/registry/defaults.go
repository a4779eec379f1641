// pkg/registry/defaults.go
package registry

import "encoding/json"

const definitionsJSON = `{
  "skill": {
    "type": "object",
    "required": ["name"],
    "properties": {
      "name": {"type": "string"},
      "proficiency": {"type": "string", "enum": ["", "Beginner", "Intermediate", "Advanced", "Expert"]}
    }
  },
  "salary": {
    "type": ["object", "null"],
    "properties": {
      "min": {"type": "number", "minimum": 0},
      "max": {"type": "number", "minimum": 0}
    }
  },
  "candidate": {
    "type": "object",
    "properties": {
      "id": {"type": "string"},
      "skills": {"type": "array", "items": {"$ref": "#/definitions/skill"}},
      "experienceYears": {"type": ["integer", "null"]},
      "location": {"type": "string"},
      "expectedSalary": {"$ref": "#/definitions/salary"}
    }
  },
  "job": {
    "type": "object",
    "properties": {
      "id": {"type": "string"},
      "title": {"type": "string"},
      "recruiterId": {"type": "string"},
      "requiredSkills": {"type": "array", "items": {"type": "string"}},
      "experienceMin": {"type": ["integer", "null"], "minimum": 0},
      "experienceMax": {"type": ["integer", "null"], "minimum": 0},
      "location": {"type": "string"},
      "salaryRange": {"$ref": "#/definitions/salary"}
    }
  }
}`

const scoreInputJSON = `{
  "type": "object",
  "properties": {
    "candidateId": {"type": "string", "minLength": 1},
    "jobId": {"type": "string", "minLength": 1},
    "applicationId": {"type": "string"},
    "candidateProfile": {"$ref": "#/definitions/candidate"},
    "jobRequirement": {"$ref": "#/definitions/job"}
  },
  "allOf": [
    {"anyOf": [{"required": ["candidateId"]}, {"required": ["candidateProfile"]}]},
    {"anyOf": [{"required": ["jobId"]}, {"required": ["jobRequirement"]}]}
  ]
}`

const rankInputJSON = `{
  "type": "object",
  "properties": {
    "jobId": {"type": "string", "minLength": 1},
    "jobRequirement": {"$ref": "#/definitions/job"},
    "candidateIds": {"type": "array", "items": {"type": "string", "minLength": 1}, "maxItems": 1000},
    "candidates": {"type": "array", "items": {"$ref": "#/definitions/candidate"}, "maxItems": 1000},
    "limit": {"type": "integer", "minimum": 1, "maximum": 500},
    "minScore": {"type": "integer", "minimum": 0, "maximum": 100}
  },
  "anyOf": [{"required": ["jobId"]}, {"required": ["jobRequirement"]}]
}`

const recordInputJSON = `{
  "type": "object",
  "required": ["applicationId", "overallScore"],
  "properties": {
    "applicationId": {"type": "string", "minLength": 1},
    "candidateId": {"type": "string"},
    "jobId": {"type": "string"},
    "overallScore": {"type": "integer", "minimum": 0, "maximum": 100},
    "skillsMatch": {"type": "integer", "minimum": 0, "maximum": 100},
    "experienceMatch": {"type": "integer", "minimum": 0, "maximum": 100},
    "locationMatch": {"type": "integer", "minimum": 0, "maximum": 100},
    "salaryMatch": {"type": "integer", "minimum": 0, "maximum": 100},
    "matchedSkills": {"type": ["array", "null"], "items": {"type": "string"}},
    "missingSkills": {"type": ["array", "null"], "items": {"type": "string"}},
    "notes": {"type": "string"}
  }
}`

const notifyInputJSON = `{
  "type": "object",
  "required": ["candidateId", "jobId", "overallScore"],
  "properties": {
    "candidateId": {"type": "string", "minLength": 1},
    "jobId": {"type": "string", "minLength": 1},
    "applicationId": {"type": "string"},
    "recruiterId": {"type": "string"},
    "overallScore": {"type": "integer", "minimum": 0, "maximum": 100},
    "rating": {"type": "string"},
    "notes": {"type": "string"}
  }
}`

func mustSchema(body string) map[string]interface{} {
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(body), &schema); err != nil {
		panic("registry: invalid built-in schema: " + err.Error())
	}
	var defs map[string]interface{}
	if err := json.Unmarshal([]byte(definitionsJSON), &defs); err != nil {
		panic("registry: invalid built-in definitions: " + err.Error())
	}
	schema["$schema"] = "http://json-schema.org/draft-07/schema#"
	schema["definitions"] = defs
	return schema
}

// Default returns the built-in registry describing the match workers.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{
				ID:                   "matching.job.score",
				DisplayName:          "Calculate Job Match Score",
				Description:          "Scores one candidate against one job requisition",
				Category:             "matching",
				Version:              "1.0.0",
				TaskType:             "calculate-job-match-score",
				ImplementationStatus: "completed",
				InputSchema:          mustSchema(scoreInputJSON),
				ErrorCodes:           []string{"INVALID_MATCH_INPUT", "CANDIDATE_NOT_FOUND", "JOB_NOT_FOUND", "QUERY_EXECUTION_FAILED", "QUERY_TIMEOUT"},
				Timeout:              "10s",
				Retries:              3,
				Tags:                 []string{"scoring"},
			},
			{
				ID:                   "matching.job.rank",
				DisplayName:          "Rank Job Candidates",
				Description:          "Scores and orders many candidates for one job requisition",
				Category:             "matching",
				Version:              "1.0.0",
				TaskType:             "rank-job-candidates",
				ImplementationStatus: "completed",
				InputSchema:          mustSchema(rankInputJSON),
				ErrorCodes:           []string{"INVALID_MATCH_INPUT", "JOB_NOT_FOUND", "SEARCH_QUERY_FAILED", "SEARCH_TIMEOUT", "QUERY_EXECUTION_FAILED"},
				Timeout:              "30s",
				Retries:              3,
				Tags:                 []string{"scoring", "search"},
			},
			{
				ID:                   "application.match.record",
				DisplayName:          "Record Match Result",
				Description:          "Stores the match score on the application record",
				Category:             "application",
				Version:              "1.0.0",
				TaskType:             "record-match-result",
				ImplementationStatus: "completed",
				InputSchema:          mustSchema(recordInputJSON),
				ErrorCodes:           []string{"INVALID_MATCH_INPUT", "APPLICATION_NOT_FOUND", "DATABASE_UPDATE_FAILED"},
				Timeout:              "10s",
				Retries:              3,
				Tags:                 []string{"persistence"},
			},
			{
				ID:                   "communication.match.notify",
				DisplayName:          "Notify Match",
				Description:          "Emails or texts the recruiter about a strong match",
				Category:             "communication",
				Version:              "1.0.0",
				TaskType:             "notify-match",
				ImplementationStatus: "completed",
				InputSchema:          mustSchema(notifyInputJSON),
				ErrorCodes:           []string{"INVALID_MATCH_INPUT", "NOTIFICATION_SEND_FAILED", "TEMPLATE_NOT_FOUND"},
				Timeout:              "15s",
				Retries:              3,
				Tags:                 []string{"notification"},
			},
		},
	}
}
