package grpc

// proto.go defines the gRPC server interface derived from
// redflags/v1/analysis.proto. It is a stand-in for buf-generated code; once
// `buf generate` is run, replace it with the generated package import.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AnalysisServiceServer is the server API for AnalysisService.
type AnalysisServiceServer interface {
	AnalyzeReport(context.Context, *AnalyzeReportRequest) (*AnalyzeReportResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error)
	mustEmbedUnimplementedAnalysisServiceServer()
}

// UnimplementedAnalysisServiceServer provides forward-compatible defaults.
type UnimplementedAnalysisServiceServer struct{}

func (UnimplementedAnalysisServiceServer) AnalyzeReport(context.Context, *AnalyzeReportRequest) (*AnalyzeReportResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeReport not implemented")
}
func (UnimplementedAnalysisServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedAnalysisServiceServer) ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAssessments not implemented")
}
func (UnimplementedAnalysisServiceServer) mustEmbedUnimplementedAnalysisServiceServer() {}

// RegisterAnalysisServiceServer registers the server implementation.
func RegisterAnalysisServiceServer(s *grpclib.Server, srv AnalysisServiceServer) {
	s.RegisterService(&_AnalysisService_serviceDesc, srv)
}

var _AnalysisService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "redflags.v1.AnalysisService",
	HandlerType: (*AnalysisServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeReport", Handler: _AnalysisService_AnalyzeReport_Handler},
		{MethodName: "GetAssessment", Handler: _AnalysisService_GetAssessment_Handler},
		{MethodName: "ListAssessments", Handler: _AnalysisService_ListAssessments_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _AnalysisService_AnalyzeReport_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AnalyzeReportRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AnalysisServiceServer).AnalyzeReport(ctx, req)
}

func _AnalysisService_GetAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AnalysisServiceServer).GetAssessment(ctx, req)
}

func _AnalysisService_ListAssessments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListAssessmentsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AnalysisServiceServer).ListAssessments(ctx, req)
}
