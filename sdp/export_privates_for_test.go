package sdp

// Test-only re-export of the cone lowering, following the repo-wide
// export_privates_for_test convention.
var BuildConeDataForTest = buildConeData
